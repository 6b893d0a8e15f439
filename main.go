package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"tinyfc/nes"
	"tinyfc/ui"
)

// 命令行参数
var (
	flagTrace      bool
	flagAutomation bool
)

func main() {
	flag.BoolVar(&flagTrace, "trace", false, "print one log line per executed instruction")
	flag.BoolVar(&flagAutomation, "automation", false, "headless run with PC forced to $C000 (nestest mode)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tinyfc [-trace] [-automation] <rom path>")
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	info, err := os.Stat(filePath)
	if err != nil {
		log.Fatal(err)
	}
	if info.IsDir() {
		log.Fatalf("%s is a directory", filePath)
	}

	fileData, err := ioutil.ReadFile(filePath)
	if err != nil {
		log.Fatal(err)
	}

	console, err := nes.NewConsole(fileData)
	if err != nil {
		log.Fatal(err)
	}

	if flagAutomation {
		runAutomation(console)
		return
	}

	ui.OpenWindow(console)
}

// automation模式：PC压到$C000，不开窗口不出声，跑到出错为止。
// 配合-trace可以和别的模拟器逐行对日志
func runAutomation(console *nes.Console) {
	console.CPU.PC = 0xC000
	for {
		if flagTrace {
			fmt.Println(nes.Trace(console.CPU))
		}
		if _, err := console.Step(); err != nil {
			log.Fatal(err)
		}
	}
}
