package ui

import (
	"log"
	"time"

	"tinyfc/nes"
)

var stop bool = false
var timestamp float64

func floatSecond() float64 {
	return float64(time.Now().UnixNano()) * 1e-9
}

// RunView 按真实时间驱动模拟器，撞到文档外opcode直接停机报错
func RunView(console *nes.Console) {
	timestamp = floatSecond()
	for !stop {
		if err := RunStep(console); err != nil {
			log.Fatalf("emulation halted: %v", err)
		}
	}
}

func RunStep(console *nes.Console) error {
	current := floatSecond()
	err := console.StepSeconds(current - timestamp)
	timestamp = current
	return err
}
