package nes

import (
	"errors"
	"fmt"
)

/*
CPU模块 2A03里的6502核心
对外接口：Step / Reset / NewCPU
每次Step执行一条指令并返回消耗的周期数，宿主按返回值驱动PPU(3倍)和APU。
十进制模式2A03没接，D标志只存不用。
*/

// 遇到文档外的opcode直接报错交给宿主，不能悄悄当NOP吞掉
var ErrBadOpcode = errors.New("bad opcode")

// 各中断向量的地址，2byte
const (
	// NMI中断
	NMI = 0xfffa
	// 每次上电/复位
	RESET = 0xfffc
	// IRQ/BRK共用中断地址
	IRQ = 0xfffe
)

const CPUFrequency = 1789773

// 寻址方式
const (
	_ = iota
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeAccumulator
	modeImmediate
	modeImplied
	modeIndexedIndirect
	modeIndirect
	modeIndirectIndexed
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
)

// 每个opcode的寻址方式
var instructionModes = [256]byte{
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	1, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 8, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 13, 13, 6, 3, 6, 3, 2, 2, 3, 3,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 13, 13, 6, 3, 6, 3, 2, 2, 3, 3,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
}

// 每个指令的字节长度
var instructionSizes = [256]byte{
	2, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	3, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	1, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	1, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 0, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 0, 3, 0, 0,
	2, 2, 2, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 2, 1, 0, 3, 3, 3, 0,
	2, 2, 0, 0, 2, 2, 2, 0, 1, 3, 1, 0, 3, 3, 3, 0,
}

// 指令占用基础周期数，不包括额外周期。
// 注意STA这类纯写指令的带变址绝对/间接寻址，基础值里已经含了跨页的那一个周期
// （硬件上它们总是多走一拍并且不做投机读，这样$2007这种有副作用的寄存器不会被脏读）
var instructionCycles = [256]byte{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

// 跨页时是否多一个周期（读类指令置1；分支也置1，但分支的跨页周期由addBranchCycles另算，这里的值不生效）
var instructionPageCycles = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
}

// 指令名，文档外的位置留着给trace用
var instructionNames = [256]string{
	"BRK", "ORA", "KIL", "SLO", "NOP", "ORA", "ASL", "SLO",
	"PHP", "ORA", "ASL", "ANC", "NOP", "ORA", "ASL", "SLO",
	"BPL", "ORA", "KIL", "SLO", "NOP", "ORA", "ASL", "SLO",
	"CLC", "ORA", "NOP", "SLO", "NOP", "ORA", "ASL", "SLO",
	"JSR", "AND", "KIL", "RLA", "BIT", "AND", "ROL", "RLA",
	"PLP", "AND", "ROL", "ANC", "BIT", "AND", "ROL", "RLA",
	"BMI", "AND", "KIL", "RLA", "NOP", "AND", "ROL", "RLA",
	"SEC", "AND", "NOP", "RLA", "NOP", "AND", "ROL", "RLA",
	"RTI", "EOR", "KIL", "SRE", "NOP", "EOR", "LSR", "SRE",
	"PHA", "EOR", "LSR", "ALR", "JMP", "EOR", "LSR", "SRE",
	"BVC", "EOR", "KIL", "SRE", "NOP", "EOR", "LSR", "SRE",
	"CLI", "EOR", "NOP", "SRE", "NOP", "EOR", "LSR", "SRE",
	"RTS", "ADC", "KIL", "RRA", "NOP", "ADC", "ROR", "RRA",
	"PLA", "ADC", "ROR", "ARR", "JMP", "ADC", "ROR", "RRA",
	"BVS", "ADC", "KIL", "RRA", "NOP", "ADC", "ROR", "RRA",
	"SEI", "ADC", "NOP", "RRA", "NOP", "ADC", "ROR", "RRA",
	"NOP", "STA", "NOP", "SAX", "STY", "STA", "STX", "SAX",
	"DEY", "NOP", "TXA", "XAA", "STY", "STA", "STX", "SAX",
	"BCC", "STA", "KIL", "AHX", "STY", "STA", "STX", "SAX",
	"TYA", "STA", "TXS", "TAS", "SHY", "STA", "SHX", "AHX",
	"LDY", "LDA", "LDX", "LAX", "LDY", "LDA", "LDX", "LAX",
	"TAY", "LDA", "TAX", "LAX", "LDY", "LDA", "LDX", "LAX",
	"BCS", "LDA", "KIL", "LAX", "LDY", "LDA", "LDX", "LAX",
	"CLV", "LDA", "TSX", "LAS", "LDY", "LDA", "LDX", "LAX",
	"CPY", "CMP", "NOP", "DCP", "CPY", "CMP", "DEC", "DCP",
	"INY", "CMP", "DEX", "AXS", "CPY", "CMP", "DEC", "DCP",
	"BNE", "CMP", "KIL", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CLD", "CMP", "NOP", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CPX", "SBC", "NOP", "ISC", "CPX", "SBC", "INC", "ISC",
	"INX", "SBC", "NOP", "SBC", "CPX", "SBC", "INC", "ISC",
	"BEQ", "SBC", "KIL", "ISC", "NOP", "SBC", "INC", "ISC",
	"SED", "SBC", "NOP", "ISC", "NOP", "SBC", "INC", "ISC",
}

/*
256个指令入口，文档外的opcode一律nil，Step碰到就返回ErrBadOpcode
*/
func (c *CPU) createTable() {
	c.table = [256]func(*stepInfo){
		c.brk, c.ora, nil, nil, nil, c.ora, c.asl, nil,
		c.php, c.ora, c.asl, nil, nil, c.ora, c.asl, nil,
		c.bpl, c.ora, nil, nil, nil, c.ora, c.asl, nil,
		c.clc, c.ora, nil, nil, nil, c.ora, c.asl, nil,
		c.jsr, c.and, nil, nil, c.bit, c.and, c.rol, nil,
		c.plp, c.and, c.rol, nil, c.bit, c.and, c.rol, nil,
		c.bmi, c.and, nil, nil, nil, c.and, c.rol, nil,
		c.sec, c.and, nil, nil, nil, c.and, c.rol, nil,
		c.rti, c.eor, nil, nil, nil, c.eor, c.lsr, nil,
		c.pha, c.eor, c.lsr, nil, c.jmp, c.eor, c.lsr, nil,
		c.bvc, c.eor, nil, nil, nil, c.eor, c.lsr, nil,
		c.cli, c.eor, nil, nil, nil, c.eor, c.lsr, nil,
		c.rts, c.adc, nil, nil, nil, c.adc, c.ror, nil,
		c.pla, c.adc, c.ror, nil, c.jmp, c.adc, c.ror, nil,
		c.bvs, c.adc, nil, nil, nil, c.adc, c.ror, nil,
		c.sei, c.adc, nil, nil, nil, c.adc, c.ror, nil,
		nil, c.sta, nil, nil, c.sty, c.sta, c.stx, nil,
		c.dey, nil, c.txa, nil, c.sty, c.sta, c.stx, nil,
		c.bcc, c.sta, nil, nil, c.sty, c.sta, c.stx, nil,
		c.tya, c.sta, c.txs, nil, nil, c.sta, nil, nil,
		c.ldy, c.lda, c.ldx, nil, c.ldy, c.lda, c.ldx, nil,
		c.tay, c.lda, c.tax, nil, c.ldy, c.lda, c.ldx, nil,
		c.bcs, c.lda, nil, nil, c.ldy, c.lda, c.ldx, nil,
		c.clv, c.lda, c.tsx, nil, c.ldy, c.lda, c.ldx, nil,
		c.cpy, c.cmp, nil, nil, c.cpy, c.cmp, c.dec, nil,
		c.iny, c.cmp, c.dex, nil, c.cpy, c.cmp, c.dec, nil,
		c.bne, c.cmp, nil, nil, nil, c.cmp, c.dec, nil,
		c.cld, c.cmp, nil, nil, nil, c.cmp, c.dec, nil,
		c.cpx, c.sbc, nil, nil, c.cpx, c.sbc, c.inc, nil,
		c.inx, c.sbc, c.nop, nil, c.cpx, c.sbc, c.inc, nil,
		c.beq, c.sbc, nil, nil, nil, c.sbc, c.inc, nil,
		c.sed, c.sbc, nil, nil, nil, c.sbc, c.inc, nil,
	}
}

type CPU struct {
	CPUBus
	Cycles uint64 // 上电以来的总周期数，只增不减
	PC     uint16
	SP     byte // 堆栈指针，落在$0100-$01FF这页里
	A      byte
	X      byte
	Y      byte
	C      byte // 8个状态FLAG C - 进位标志
	Z      byte // Z - 结果为零标志
	I      byte // I - 中断屏蔽
	D      byte // D - 十进制，2A03不用
	B      byte // BRK
	U      byte // 未使用，压栈时恒为1
	V      byte // 溢出标志
	N      byte // 负标志

	// NMI是边沿触发：nmiPrev记录上一次采样的电平，上升沿置nmiPending
	nmiPending bool
	nmiPrev    bool

	table [256]func(*stepInfo)
}

// 指令执行需要的信息
type stepInfo struct {
	address uint16
	pc      uint16
	mode    byte
}

func NewCPU(bus CPUBus) *CPU {
	cpu := CPU{CPUBus: bus}
	cpu.createTable()
	cpu.Reset()
	return &cpu
}

// 上电状态：A=X=Y=0 SP=$FD P=$24 PC取RESET向量，周期从7起算
func (cpu *CPU) Reset() {
	cpu.PC = cpu.Read16(RESET)
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xfd
	cpu.setFlags(0x24)
	cpu.Cycles = 7
	cpu.nmiPending = false
	cpu.nmiPrev = false
}

func (cpu *CPU) Read16(addr uint16) uint16 {
	low := cpu.Read(addr)
	high := cpu.Read(addr + 1)
	return (uint16(high) << 8) | uint16(low)
}

// 模拟6502取16位数据不进位的bug
// 例如JMP ($10FF), 理论上读$10FF和$1100两个字节, 实际读的是$10FF和$1000
func (cpu *CPU) read16bug(address uint16) uint16 {
	a := address
	b := (a & 0xFF00) | uint16(byte(a)+1)
	lo := cpu.Read(a)
	hi := cpu.Read(b)
	return (uint16(hi) << 8) | uint16(lo)
}

// 栈操作 SP向0x00方向走，对应真实地址$0100-$01FF
func (cpu *CPU) push(value byte) {
	cpu.Write(0x100|uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) push16(value uint16) {
	cpu.push(byte(value >> 8))
	cpu.push(byte(value & 0xff))
}

func (cpu *CPU) pull() byte {
	cpu.SP++
	return cpu.Read(0x100 | uint16(cpu.SP))
}

func (cpu *CPU) pull16() uint16 {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	return (hi << 8) | lo
}

// 零标志
func (cpu *CPU) setZ(value byte) {
	if value == 0 {
		cpu.Z = 1
	} else {
		cpu.Z = 0
	}
}

// 负标志
func (cpu *CPU) setN(value byte) {
	if value&0x80 != 0 {
		cpu.N = 1
	} else {
		cpu.N = 0
	}
}

func (cpu *CPU) setZN(value byte) {
	cpu.setN(value)
	cpu.setZ(value)
}

func (cpu *CPU) getFlags() byte {
	var flags byte
	flags |= cpu.C << 0
	flags |= cpu.Z << 1
	flags |= cpu.I << 2
	flags |= cpu.D << 3
	flags |= cpu.B << 4
	flags |= cpu.U << 5
	flags |= cpu.V << 6
	flags |= cpu.N << 7
	return flags
}

func (cpu *CPU) setFlags(p byte) {
	cpu.C = (p >> 0) & 1
	cpu.Z = (p >> 1) & 1
	cpu.I = (p >> 2) & 1
	cpu.D = (p >> 3) & 1
	cpu.B = (p >> 4) & 1
	cpu.U = (p >> 5) & 1
	cpu.V = (p >> 6) & 1
	cpu.N = (p >> 7) & 1
}

// 在指令边界采样NMI线，上升沿锁存。
// 中断服务程序压完状态后还会再采样一次，这是向量劫持的来源
func (cpu *CPU) pollNMI() {
	line := cpu.PollNMI()
	if line && !cpu.nmiPrev {
		cpu.nmiPending = true
	}
	cpu.nmiPrev = line
}

// NMI/IRQ/BRK共用的中断流程：
// 压PC高字节、低字节，压P（B位按来源定），置I，取向量。7个周期。
// 取向量前重新看一次NMI锁存，BRK/IRQ可能被劫持到$FFFA
func (cpu *CPU) interruptVector() uint16 {
	cpu.pollNMI()
	if cpu.nmiPending {
		cpu.nmiPending = false
		return NMI
	}
	return IRQ
}

func (cpu *CPU) nmi() {
	cpu.push16(cpu.PC)
	// 硬件中断压栈B=0，bit5恒1
	cpu.push(cpu.getFlags()&0xef | 0x20)
	cpu.I = 1
	cpu.PC = cpu.Read16(NMI)
	cpu.Cycles += 7
}

func (cpu *CPU) irq() {
	cpu.push16(cpu.PC)
	cpu.push(cpu.getFlags()&0xef | 0x20)
	cpu.I = 1
	cpu.PC = cpu.Read16(cpu.interruptVector())
	cpu.Cycles += 7
}

// 分支跳转成功+1，目标跨页再+1
func (cpu *CPU) addBranchCycles(info *stepInfo) {
	cpu.Cycles++
	if cpu.pageDiff(info.pc, info.address) {
		cpu.Cycles++
	}
}

// 判断两个地址是否在同一页
func (cpu *CPU) pageDiff(old uint16, new uint16) bool {
	return old&0xff00 != new&0xff00
}

// Step执行一条指令：先处理挂起的中断，然后取指-寻址-执行-算周期。
// 返回这条指令消耗的周期数（含DMA停摆）
func (cpu *CPU) Step() (int64, error) {
	cpu.pollNMI()
	if cpu.nmiPending {
		cpu.nmiPending = false
		cpu.nmi()
		return 7, nil
	}
	if cpu.PollIRQ() && cpu.I == 0 {
		cpu.irq()
		return 7, nil
	}

	opcode := cpu.Read(cpu.PC)
	if cpu.table[opcode] == nil {
		return 0, fmt.Errorf("%w: 0x%02X at 0x%04X", ErrBadOpcode, opcode, cpu.PC)
	}

	mode := instructionModes[opcode]
	lastCycles := cpu.Cycles

	var address uint16
	var pageCrossed bool

	switch mode {
	case modeAbsolute:
		address = cpu.Read16(cpu.PC + 1)
	case modeAbsoluteX:
		address = cpu.Read16(cpu.PC+1) + uint16(cpu.X)
		pageCrossed = cpu.pageDiff(address-uint16(cpu.X), address)
	case modeAbsoluteY:
		address = cpu.Read16(cpu.PC+1) + uint16(cpu.Y)
		pageCrossed = cpu.pageDiff(address-uint16(cpu.Y), address)
	case modeAccumulator:
		address = 0
	case modeImmediate:
		address = cpu.PC + 1
	case modeImplied:
		address = 0
	// 变址间接寻址，zero page内回绕
	case modeIndexedIndirect:
		address = cpu.read16bug(uint16(cpu.Read(cpu.PC+1) + cpu.X))
	// 间接寻址，带$xxFF不进位bug
	case modeIndirect:
		address = cpu.read16bug(cpu.Read16(cpu.PC + 1))
	// 间接变址寻址
	case modeIndirectIndexed:
		address = cpu.read16bug(uint16(cpu.Read(cpu.PC+1))) + uint16(cpu.Y)
		pageCrossed = cpu.pageDiff(address-uint16(cpu.Y), address)
	// 相对寻址
	case modeRelative:
		offset := uint16(cpu.Read(cpu.PC + 1))
		if offset < 0x80 {
			address = cpu.PC + 2 + offset
		} else {
			address = cpu.PC + 2 + offset - 0x100
		}
	case modeZeroPage:
		address = uint16(cpu.Read(cpu.PC+1)) & 0xff
	case modeZeroPageX:
		address = uint16(cpu.Read(cpu.PC+1)+cpu.X) & 0xff
	case modeZeroPageY:
		address = uint16(cpu.Read(cpu.PC+1)+cpu.Y) & 0xff
	}

	cpu.PC += uint16(instructionSizes[opcode])

	cpu.Cycles += uint64(instructionCycles[opcode])
	if pageCrossed {
		cpu.Cycles += uint64(instructionPageCycles[opcode])
	}

	info := &stepInfo{address, cpu.PC, mode}
	cpu.table[opcode](info)

	// 这条指令要是写了$4014，把DMA欠的周期补上。
	// 513个周期，DMA起始落在奇数周期再多一个
	if stall := cpu.ClaimStall(); stall > 0 {
		if cpu.Cycles%2 == 1 {
			stall++
		}
		cpu.Cycles += uint64(stall)
	}

	return int64(cpu.Cycles - lastCycles), nil
}

// LDA - load "A"
func (cpu *CPU) lda(info *stepInfo) {
	cpu.A = cpu.Read(info.address)
	cpu.setZN(cpu.A)
}

// LDX - load "X"
func (cpu *CPU) ldx(info *stepInfo) {
	cpu.X = cpu.Read(info.address)
	cpu.setZN(cpu.X)
}

// LDY - load "Y"
func (cpu *CPU) ldy(info *stepInfo) {
	cpu.Y = cpu.Read(info.address)
	cpu.setZN(cpu.Y)
}

// STA - store "A"
func (cpu *CPU) sta(info *stepInfo) {
	cpu.Write(info.address, cpu.A)
}

// STX - store "X"
func (cpu *CPU) stx(info *stepInfo) {
	cpu.Write(info.address, cpu.X)
}

// STY - store "Y"
func (cpu *CPU) sty(info *stepInfo) {
	cpu.Write(info.address, cpu.Y)
}

// ADC - add with carry -- A = A + M + C
// V：两个同号加数出异号结果
func (cpu *CPU) adc(info *stepInfo) {
	a := cpu.A
	b := cpu.Read(info.address)
	c := cpu.C
	cpu.A = a + b + c
	cpu.setZN(cpu.A)
	if int(a)+int(b)+int(c) > 0xFF {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
	if (a^b)&0x80 == 0 && (a^cpu.A)&0x80 != 0 {
		cpu.V = 1
	} else {
		cpu.V = 0
	}
}

// SBC - subtract with carry -- A = A - M - (1 - C)
func (cpu *CPU) sbc(info *stepInfo) {
	a := cpu.A
	b := cpu.Read(info.address)
	c := cpu.C
	cpu.A = a - b - (1 - c)
	cpu.setZN(cpu.A)
	if int(a)-int(b)-int(1-c) >= 0 {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
	if (a^b)&0x80 != 0 && (a^cpu.A)&0x80 != 0 {
		cpu.V = 1
	} else {
		cpu.V = 0
	}
}

// INC - Increment memory
func (cpu *CPU) inc(info *stepInfo) {
	value := cpu.Read(info.address) + 1
	cpu.Write(info.address, value)
	cpu.setZN(value)
}

// DEC - Decrement memory
func (cpu *CPU) dec(info *stepInfo) {
	value := cpu.Read(info.address) - 1
	cpu.Write(info.address, value)
	cpu.setZN(value)
}

// AND - A & memory
func (cpu *CPU) and(info *stepInfo) {
	cpu.A = cpu.A & cpu.Read(info.address)
	cpu.setZN(cpu.A)
}

// ORA - A | memory
func (cpu *CPU) ora(info *stepInfo) {
	cpu.A |= cpu.Read(info.address)
	cpu.setZN(cpu.A)
}

// EOR - A ^ memory
func (cpu *CPU) eor(info *stepInfo) {
	cpu.A ^= cpu.Read(info.address)
	cpu.setZN(cpu.A)
}

// INX - Increment X
func (cpu *CPU) inx(info *stepInfo) {
	cpu.X++
	cpu.setZN(cpu.X)
}

// DEX - Decrement X
func (cpu *CPU) dex(info *stepInfo) {
	cpu.X--
	cpu.setZN(cpu.X)
}

// INY - Increment Y
func (cpu *CPU) iny(info *stepInfo) {
	cpu.Y++
	cpu.setZN(cpu.Y)
}

// DEY - Decrement Y
func (cpu *CPU) dey(info *stepInfo) {
	cpu.Y--
	cpu.setZN(cpu.Y)
}

// TAX - Transfer A to X
func (cpu *CPU) tax(info *stepInfo) {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
}

// TXA - Transfer X to A
func (cpu *CPU) txa(info *stepInfo) {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
}

// TAY - Transfer A to Y
func (cpu *CPU) tay(info *stepInfo) {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
}

// TYA - Transfer Y to A
func (cpu *CPU) tya(info *stepInfo) {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
}

// TSX - Transfer SP to X
func (cpu *CPU) tsx(info *stepInfo) {
	cpu.X = cpu.SP
	cpu.setZN(cpu.X)
}

// TXS - Transfer X to SP，不影响标志
func (cpu *CPU) txs(info *stepInfo) {
	cpu.SP = cpu.X
}

// CLC - Clear Carry
func (cpu *CPU) clc(info *stepInfo) {
	cpu.C = 0
}

// SEC - Set Carry
func (cpu *CPU) sec(info *stepInfo) {
	cpu.C = 1
}

// CLD - Clear Decimal
func (cpu *CPU) cld(info *stepInfo) {
	cpu.D = 0
}

// SED - Set Decimal
func (cpu *CPU) sed(info *stepInfo) {
	cpu.D = 1
}

// CLV - Clear Overflow
func (cpu *CPU) clv(info *stepInfo) {
	cpu.V = 0
}

// CLI - Clear Interrupt-disable
func (cpu *CPU) cli(info *stepInfo) {
	cpu.I = 0
}

// SEI - Set Interrupt-disable
func (cpu *CPU) sei(info *stepInfo) {
	cpu.I = 1
}

func (cpu *CPU) compare(a, b byte) {
	cpu.setZN(a - b)
	if a >= b {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
}

// CMP - Compare memory with A
func (cpu *CPU) cmp(info *stepInfo) {
	cpu.compare(cpu.A, cpu.Read(info.address))
}

// CPX - Compare memory with X
func (cpu *CPU) cpx(info *stepInfo) {
	cpu.compare(cpu.X, cpu.Read(info.address))
}

// CPY - Compare memory with Y
func (cpu *CPU) cpy(info *stepInfo) {
	cpu.compare(cpu.Y, cpu.Read(info.address))
}

// BIT - N取操作数bit7，V取bit6，Z看A&M
func (cpu *CPU) bit(info *stepInfo) {
	value := cpu.Read(info.address)
	cpu.setZ(cpu.A & value)
	cpu.V = (value >> 6) & 1
	cpu.N = (value >> 7) & 1
}

// ASL - Arithmetic Shift Left --  C <- |7|6|5|4|3|2|1|0| <- 0
func (cpu *CPU) asl(info *stepInfo) {
	if info.mode == modeAccumulator {
		cpu.C = (cpu.A >> 7) & 1
		cpu.A <<= 1
		cpu.setZN(cpu.A)
	} else {
		value := cpu.Read(info.address)
		cpu.C = (value >> 7) & 1
		value <<= 1
		cpu.Write(info.address, value)
		cpu.setZN(value)
	}
}

// LSR - Logical Shift Right
func (cpu *CPU) lsr(info *stepInfo) {
	if info.mode == modeAccumulator {
		cpu.C = cpu.A & 1
		cpu.A >>= 1
		cpu.setZN(cpu.A)
	} else {
		value := cpu.Read(info.address)
		cpu.C = value & 1
		value >>= 1
		cpu.Write(info.address, value)
		cpu.setZN(value)
	}
}

// ROL - Rotate Left
func (cpu *CPU) rol(info *stepInfo) {
	if info.mode == modeAccumulator {
		c := cpu.C
		cpu.C = (cpu.A >> 7) & 1
		cpu.A = (cpu.A << 1) | c
		cpu.setZN(cpu.A)
	} else {
		c := cpu.C
		value := cpu.Read(info.address)
		cpu.C = (value >> 7) & 1
		value = (value << 1) | c
		cpu.Write(info.address, value)
		cpu.setZN(value)
	}
}

// ROR - Rotate Right
func (cpu *CPU) ror(info *stepInfo) {
	if info.mode == modeAccumulator {
		c := cpu.C
		cpu.C = cpu.A & 1
		cpu.A = (cpu.A >> 1) | (c << 7)
		cpu.setZN(cpu.A)
	} else {
		c := cpu.C
		value := cpu.Read(info.address)
		cpu.C = value & 1
		value = (value >> 1) | (c << 7)
		cpu.Write(info.address, value)
		cpu.setZN(value)
	}
}

// PHA - Push A
func (cpu *CPU) pha(info *stepInfo) {
	cpu.push(cpu.A)
}

// PLA - Pull A
func (cpu *CPU) pla(info *stepInfo) {
	cpu.A = cpu.pull()
	cpu.setZN(cpu.A)
}

// PHP - Push Processor-status，软件压栈B=1
func (cpu *CPU) php(info *stepInfo) {
	cpu.push(cpu.getFlags() | 0x30)
}

// PLP - Pull Processor-status，B位丢弃，bit5恒1
func (cpu *CPU) plp(info *stepInfo) {
	cpu.setFlags(cpu.pull()&0xef | 0x20)
}

// JMP - Jump
func (cpu *CPU) jmp(info *stepInfo) {
	cpu.PC = info.address
}

// BEQ - Branch if Equal
func (cpu *CPU) beq(info *stepInfo) {
	if cpu.Z > 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BNE - Branch if Not Equal
func (cpu *CPU) bne(info *stepInfo) {
	if cpu.Z == 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BCS - Branch if Carry Set
func (cpu *CPU) bcs(info *stepInfo) {
	if cpu.C > 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BCC - Branch if Carry Clear
func (cpu *CPU) bcc(info *stepInfo) {
	if cpu.C == 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BMI - Branch if Minus
func (cpu *CPU) bmi(info *stepInfo) {
	if cpu.N > 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BPL - Branch if Plus
func (cpu *CPU) bpl(info *stepInfo) {
	if cpu.N == 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BVS - Branch if Overflow Set
func (cpu *CPU) bvs(info *stepInfo) {
	if cpu.V > 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// BVC - Branch if Overflow Clear
func (cpu *CPU) bvc(info *stepInfo) {
	if cpu.V == 0 {
		cpu.PC = info.address
		cpu.addBranchCycles(info)
	}
}

// JSR - Jump to Subroutine
func (cpu *CPU) jsr(info *stepInfo) {
	cpu.push16(cpu.PC - 1)
	cpu.PC = info.address
}

// RTS - Return from Subroutine
func (cpu *CPU) rts(info *stepInfo) {
	cpu.PC = cpu.pull16() + 1
}

// NOP - do nothing
func (cpu *CPU) nop(info *stepInfo) {}

// BRK 软件中断，压栈时B=1。
// 状态压完之后如果NMI已经锁存，向量被劫持到$FFFA，
// 压进栈里的还是BRK自己的状态
func (cpu *CPU) brk(info *stepInfo) {
	cpu.push16(cpu.PC)
	cpu.push(cpu.getFlags() | 0x30)
	cpu.I = 1
	cpu.PC = cpu.Read16(cpu.interruptVector())
}

// RTI - Return from Interrupt
func (cpu *CPU) rti(info *stepInfo) {
	cpu.setFlags(cpu.pull()&0xef | 0x20)
	cpu.PC = cpu.pull16()
}

/*
P 状态寄存器
BIT	名称	含义
0	C	进位标志，如果计算结果产生进位，则置 1
1	Z	零标志，如果结算结果为 0，则置 1
2	I	中断去使能标志，置 1 则可屏蔽掉 IRQ 中断
3	D	十进制模式，2A03未接
4	B	BRK/PHP压栈时置1，硬件中断压栈时置0
5	-	未使用，压栈时恒为 1
6	V	溢出标志，如果结算结果产生了溢出，则置 1
7	N	负标志，如果计算结果为负，则置 1
*/

/*
额外的时钟
有两种情况会额外增加时钟

(1)分支指令进行跳转时，如果检测条件为真，额外增加 1 个时钟，
目标地址和分支指令的下一条指令不在同一页，再增加 1 个

(2)跨 Page 访问
带X/Y变址的绝对寻址和间接变址寻址，有效地址和基地址不在同一页时，
读类指令需要额外增加一个时钟。例如 0x1234 与 0x12FF 为同一 Page，
但是与 0x1334 为不同 Page。
写类指令（STA和读改写的写回）不做投机读，这一个时钟固定算在基础周期里
*/
