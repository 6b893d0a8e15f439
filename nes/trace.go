package nes

import "fmt"

// Trace 生成当前指令执行前的一行日志：
// PPPP OP AA BB MNEMONIC A:aa X:xx Y:yy P:pp SP:ss CYC:ccc
// PC和指令字节是16进制，寄存器16进制，周期10进制。
// 不足三字节的指令，空缺的字节位置用空格占位，保持列对齐
func Trace(cpu *CPU) string {
	opcode := cpu.Read(cpu.PC)
	size := instructionSizes[opcode]
	name := instructionNames[opcode]

	w1 := fmt.Sprintf("%02X", cpu.Read(cpu.PC+1))
	w2 := fmt.Sprintf("%02X", cpu.Read(cpu.PC+2))
	if size < 2 {
		w1 = "  "
	}
	if size < 3 {
		w2 = "  "
	}

	return fmt.Sprintf("%04X %02X %s %s %s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		cpu.PC, opcode, w1, w2, name,
		cpu.A, cpu.X, cpu.Y, cpu.getFlags(), cpu.SP, cpu.Cycles)
}
