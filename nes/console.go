package nes

import "image"

/**
这个模块把cpu/ppu/apu/mapper/卡带/手柄组装成一台主机。
总线独占RAM和各外设句柄，CPU每条指令借用总线，
宿主循环按CPU返回的周期数驱动PPU（3倍时钟）和APU（同频）。
*/

type Console struct {
	CPU         *CPU
	PPU         *PPU
	APU         *APU
	Bus         *Bus
	Card        *Cartridge
	Mapper      Mapper
	Controller1 *Controller
	Controller2 *Controller
}

func NewConsole(data []byte) (*Console, error) {
	card, err := LoadCartridge(data)
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapper(card)
	if err != nil {
		return nil, err
	}

	ppu := NewPPU(card, mapper)
	apu := NewAPU()
	ctrl1 := NewController()
	ctrl2 := NewController()
	bus := NewBus(card, mapper, ppu, apu, ctrl1, ctrl2)
	// DMC的取样读走总线
	apu.SetMemoryRead(bus.Read)
	cpu := NewCPU(bus)

	return &Console{
		CPU:         cpu,
		PPU:         ppu,
		APU:         apu,
		Bus:         bus,
		Card:        card,
		Mapper:      mapper,
		Controller1: ctrl1,
		Controller2: ctrl2,
	}, nil
}

func (console *Console) Reset() {
	console.CPU.Reset()
}

// Step 执行一条CPU指令，按比例推进PPU和APU
func (console *Console) Step() (int64, error) {
	cpuCycles, err := console.CPU.Step()
	if err != nil {
		return 0, err
	}
	// PPU的时钟是CPU三倍
	for i := int64(0); i < cpuCycles*3; i++ {
		console.PPU.Step()
	}
	for i := int64(0); i < cpuCycles; i++ {
		console.APU.Step()
	}
	return cpuCycles, nil
}

func (console *Console) StepSeconds(seconds float64) error {
	cycles := int64(CPUFrequency * seconds)
	for cycles > 0 {
		n, err := console.Step()
		if err != nil {
			return err
		}
		cycles -= n
	}
	return nil
}

func (console *Console) SetButton1(buttons [8]bool) {
	console.Controller1.SetButtons(buttons)
}

func (console *Console) SetButton2(buttons [8]bool) {
	console.Controller2.SetButtons(buttons)
}

func (console *Console) SetAudioSampleRate(rate float64) {
	console.APU.SetSampleRate(rate)
}

func (console *Console) SetAudioOutputWork(work func(float32)) {
	console.APU.SetOutputWork(work)
}

func (console *Console) Buffer() *image.RGBA {
	return console.PPU.Buffer()
}
