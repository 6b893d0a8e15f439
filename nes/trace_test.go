package nes

import (
	"testing"
)

func TestTraceFormat(t *testing.T) {
	// 三字节指令
	cpu, _ := newTestCPU(0x4C, 0xF5, 0xC5) // JMP $C5F5
	want := "8000 4C F5 C5 JMP A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := Trace(cpu); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}

	// 单字节指令，空位用空格占住保持对齐
	cpu, _ = newTestCPU(0xEA)
	want = "8000 EA       NOP A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := Trace(cpu); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}

	// 两字节指令
	cpu, _ = newTestCPU(0xA9, 0x42)
	want = "8000 A9 42    LDA A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := Trace(cpu); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestTraceTracksState(t *testing.T) {
	cpu, _ := newTestCPU(
		0xA9, 0x42, // LDA #$42
		0xAA, // TAX
	)
	mustStep(t, cpu)
	want := "8002 AA       TAX A:42 X:00 Y:00 P:24 SP:FD CYC:9"
	if got := Trace(cpu); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}
