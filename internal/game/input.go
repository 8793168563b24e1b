package game

import (
	"breach-lab/internal/shared/input"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func ReadInput() input.State {
	return input.State{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

func ReadJustConfirm() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

func ReadJustLeft() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft)
}

func ReadJustRight() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
}

// ReadJustDigit reports a freshly pressed digit key 1..9 as a zero-based
// index.
func ReadJustDigit() (int, bool) {
	digits := [...]ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	pads := [...]ebiten.Key{
		ebiten.KeyKP1, ebiten.KeyKP2, ebiten.KeyKP3,
		ebiten.KeyKP4, ebiten.KeyKP5, ebiten.KeyKP6,
		ebiten.KeyKP7, ebiten.KeyKP8, ebiten.KeyKP9,
	}
	for i := range digits {
		if inpututil.IsKeyJustPressed(digits[i]) || inpututil.IsKeyJustPressed(pads[i]) {
			return i, true
		}
	}
	return 0, false
}

func ReadJustPause() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func ReadJustRestart() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func ReadJustSave() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF5)
}

func ReadJustLoad() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF9)
}
