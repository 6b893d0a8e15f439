package nes

import (
	"testing"
)

// 用合成的NROM卡带装一台主机，代码放$8000
func newTestConsole(t *testing.T, code ...byte) *Console {
	t.Helper()
	data := buildROM(1, 0, 0, 0, false) // CHR-RAM
	copy(data[16:], code)
	// 复位向量 $FFFC -> $8000（单bank镜像）
	data[16+0x3ffc] = 0x00
	data[16+0x3ffd] = 0x80
	console, err := NewConsole(data)
	if err != nil {
		t.Fatal(err)
	}
	return console
}

func TestBusRAMMirroring(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	bus.Write(0x0000, 0x11)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := bus.Read(addr); got != 0x11 {
			t.Errorf("read %#04x: got %#02x, want 0x11", addr, got)
		}
	}
	// 镜像是译码出来的，写镜像等于写原地址
	bus.Write(0x1FFF, 0x22)
	if got := bus.Read(0x07FF); got != 0x22 {
		t.Errorf("read $07FF: got %#02x, want 0x22", got)
	}
}

func TestBusPPURegisterMirroring(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	// $2008是$2000的镜像
	bus.Write(0x2008, 0x80)
	if !console.PPU.nmiOutput {
		t.Error("write via $2008 did not reach PPUCTRL")
	}
	bus.Write(0x3FF8, 0x00)
	if console.PPU.nmiOutput {
		t.Error("write via $3FF8 did not reach PPUCTRL")
	}
}

func TestBusControllerStrobe(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	var buttons [8]bool
	buttons[ButtonA] = true
	buttons[ButtonStart] = true
	console.SetButton1(buttons)

	// 选通1->0之后逐位读出
	bus.Write(0x4016, 1)
	bus.Write(0x4016, 0)

	want := []byte{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		if got := bus.Read(0x4016); got != w {
			t.Errorf("read %d: got %d, want %d", i, got, w)
		}
	}
}

func TestBusOAMDMA(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	for i := 0; i < 256; i++ {
		bus.Write(uint16(0x0200+i), byte(i))
	}
	bus.Write(0x2003, 0x00) // OAMADDR = 0
	bus.Write(0x4014, 0x02)

	for i := 0; i < 256; i++ {
		if got := console.PPU.oamData[i]; got != byte(i) {
			t.Fatalf("oam[%d]: got %#02x, want %#02x", i, got, byte(i))
		}
	}
	if got := bus.ClaimStall(); got != 513 {
		t.Errorf("stall: got %d, want 513", got)
	}
	// 取走之后清零
	if got := bus.ClaimStall(); got != 0 {
		t.Errorf("stall after claim: got %d, want 0", got)
	}
}

// DMA经过CPU时的周期计账
func TestBusOAMDMACycles(t *testing.T) {
	console := newTestConsole(t,
		0xA9, 0x02, // LDA #$02
		0x8D, 0x14, 0x40, // STA $4014
	)
	cycles, err := console.CPU.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("lda: got %d cycles", cycles)
	}
	cycles, err = console.CPU.Step()
	if err != nil {
		t.Fatal(err)
	}
	// STA abs 4个周期之后总周期13（奇数），DMA算514
	if cycles != 4+514 {
		t.Errorf("sta+dma: got %d cycles, want %d", cycles, 4+514)
	}
}

func TestBusOpenBus(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	for _, addr := range []uint16{0x4000, 0x4014, 0x4018, 0x401F, 0x4020, 0x5000, 0x5FFF} {
		if got := bus.Read(addr); got != 0 {
			t.Errorf("read %#04x: got %#02x, want 0 (open bus)", addr, got)
		}
	}
}

func TestBusCartridgeSpace(t *testing.T) {
	console := newTestConsole(t, 0xEA)
	bus := console.Bus

	bus.Write(0x6000, 0x5A)
	if got := bus.Read(0x6000); got != 0x5A {
		t.Errorf("sram via bus: got %#02x, want 0x5A", got)
	}

	// NROM的PRG-ROM写不进去
	before := bus.Read(0x8000)
	bus.Write(0x8000, ^before)
	if got := bus.Read(0x8000); got != before {
		t.Errorf("rom write leaked: got %#02x, want %#02x", got, before)
	}
}

func TestConsoleStepClockRatio(t *testing.T) {
	console := newTestConsole(t, 0xEA, 0xEA)

	before := console.APU.cycle
	cycles, err := console.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("nop: got %d cycles", cycles)
	}
	if got := console.APU.cycle - before; got != uint64(cycles) {
		t.Errorf("apu cycles: got %d, want %d", got, cycles)
	}
	// PPU时钟是CPU的三倍：复位时停在340，6个点之后在scanline 241的第5格
	if console.PPU.ScanLine != 241 || console.PPU.Cycle != 5 {
		t.Errorf("ppu position: got line %d cycle %d, want 241/5",
			console.PPU.ScanLine, console.PPU.Cycle)
	}
}
