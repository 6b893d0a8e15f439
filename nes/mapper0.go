/*
mapper0 NROM 无bank切换的最简单卡带
*/

package nes

/**
CPU空间的划分：

0: [$0000, $2000) cpu 内存
1: [$2000, $4000) PPU 寄存器
2: [$4000, $6000) pAPU寄存器以及扩展区域
3: [$6000, $8000) 存档用SRAM区
剩下的全是 程序代码区 PRG-ROM [$8000, $10000)

$FFFA-FFFB = NMI
$FFFC-FFFD = RESET
$FFFE-FFFF = IRQ/BRK

两byte存的是中断触发时跳转到的指定位置的16位地址
*/

type Mapper0 struct {
	card     *Cartridge
	prgBanks int
	prgBank1 int
	prgBank2 int
}

func NewMapper0(card *Cartridge) Mapper {
	prgBanks := len(card.PRG) / 0x4000
	// 只有一块16KB时，$C000-$FFFF是$8000-$BFFF的镜像
	prgBank1 := 0
	prgBank2 := prgBanks - 1
	return &Mapper0{card, prgBanks, prgBank1, prgBank2}
}

func (mapper *Mapper0) Read(addr uint16) byte {
	card := mapper.card
	switch {
	case addr < 0x2000:
		return card.CHR[addr]
	case addr >= 0xC000:
		index := mapper.prgBank2*0x4000 + int(addr-0xC000)
		return card.PRG[index]
	case addr >= 0x8000:
		index := mapper.prgBank1*0x4000 + int(addr-0x8000)
		return card.PRG[index]
	case addr >= 0x6000:
		return card.SRAM[addr-0x6000]
	default:
		return 0
	}
}

func (mapper *Mapper0) Write(addr uint16, value byte) {
	card := mapper.card
	switch {
	case addr < 0x2000:
		// CHR-ROM不可写，CHR-RAM可以
		if card.CHRisRAM {
			card.CHR[addr] = value
		}
	case addr >= 0x8000:
		// NROM没有寄存器，对PRG-ROM的写直接丢弃
	case addr >= 0x6000:
		card.SRAM[addr-0x6000] = value
	}
}
