package nes

/*
bit:	7	6	5	4	3	2	1	0
button:	A	B	Select	Start	Up	Down	Left	Right

只能往 $4016 写（$4017 的写给 APU 帧计数器用了），
写 $4016 时对两个手柄都有效；读时 $4016 是 P1，$4017 是 P2。
strobe位为1期间持续装载按键状态，1->0之后开始逐位移出
*/

const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	buttons [8]bool
	index   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

// SetButtons 宿主把当前按键状态喂进来
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = buttons
}

// Read 返回下一个按键bit然后移位，8位读完之后返回0
func (c *Controller) Read() byte {
	var value byte
	if c.index < 8 && c.buttons[c.index] {
		value = 1
	}
	c.index++
	if c.strobe&1 == 1 {
		c.index = 0
	}
	return value
}

func (c *Controller) Write(value byte) {
	c.strobe = value
	if c.strobe&1 == 1 {
		c.index = 0
	}
}
