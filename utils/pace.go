package utils

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(rand.Intn(max-min)+min) * time.Millisecond)
}

// ScrollToBottom nudges listing pages into rendering lazy-loaded cards
// before anchors are collected.
func ScrollToBottom(page playwright.Page) {
	page.Mouse().Wheel(0, 600)
	RandomDelay(300, 600)
	page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	RandomDelay(300, 600)
}
