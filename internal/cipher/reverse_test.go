package cipher

import "testing"

func TestReverseText(t *testing.T) {
	reversed := ReverseText("Remember, remember, the fifth of november.")
	if reversed != ".rebmevon fo htfif eht ,rebmemer ,rebmemeR" {
		t.Fatalf("unexpected reversed text: %q", reversed)
	}
}

func TestReverseTextIsItsOwnInverse(t *testing.T) {
	text := "Muñecas y cañones."
	if got := ReverseText(ReverseText(text)); got != text {
		t.Fatalf("double reverse gave %q", got)
	}
}
