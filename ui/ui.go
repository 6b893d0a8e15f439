/*
负责ui渲染、声音输出、接收按键的模块
*/

package ui

import (
	"image"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"

	"tinyfc/nes"
)

func keyParse(ev *fyne.KeyEvent) int {
	index := -1
	switch ev.Name {
	// A
	case "J":
		index = nes.ButtonA
	// B
	case "K":
		index = nes.ButtonB
	// Select
	case "U":
		index = nes.ButtonSelect
	// Start
	case "I":
		index = nes.ButtonStart
	case "W":
		index = nes.ButtonUp
	case "S":
		index = nes.ButtonDown
	case "A":
		index = nes.ButtonLeft
	case "D":
		index = nes.ButtonRight
	}
	return index
}

var ctrl1 [8]bool

func OpenWindow(console *nes.Console) {
	myApp := app.New()
	w := myApp.NewWindow("TinyFC")
	w.Resize(fyne.NewSize(260, 260))
	myCanvas := w.Canvas()

	audio := NewAudio()
	audio.RunAudio(console)

	go RunView(console)

	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			index := keyParse(ev)
			if index < 0 {
				return
			}
			ctrl1[index] = true
			console.SetButton1(ctrl1)
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			index := keyParse(ev)
			if index < 0 {
				return
			}
			ctrl1[index] = false
			console.SetButton1(ctrl1)
		})
	}

	go changeContent(myCanvas, func() image.Image {
		return Resize(console.Buffer(), 256, 240, 2)
	})

	w.ShowAndRun()
}

func changeContent(can fyne.Canvas, getFrame func() image.Image) {
	for {
		// 每20ms刷新一次，约50fps
		time.Sleep(time.Millisecond * 20)
		res := canvas.NewImageFromImage(getFrame())
		can.SetContent(res)
	}
}
