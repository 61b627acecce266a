package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestFooter_DropsHintsButKeepsQuit(t *testing.T) {
	c := Chrome{Hints: []KeyHint{
		{Key: "A-E", Description: "Responder"},
		{Key: "←→", Description: "Navegar"},
		{Key: "M", Description: "Marcar"},
		{Key: "G", Description: "Visão geral"},
		{Key: "F", Description: "Finalizar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}}

	wide := c.Footer(200)
	assert.Contains(t, wide, "Visão geral")
	assert.Contains(t, wide, "Sair")

	narrow := c.Footer(50)
	assert.Contains(t, narrow, "Responder")
	assert.Contains(t, narrow, "Sair")
	assert.NotContains(t, narrow, "Finalizar")
	assert.Len(t, c.Hints, 6, "Footer must not modify the hints")
}

func TestHeader_Clock(t *testing.T) {
	h := Chrome{Title: "Questão 3", Clock: "00:12:05"}.Header(100)
	assert.Contains(t, h, "Simulado")
	assert.Contains(t, h, "Questão 3")
	assert.Contains(t, h, "⏱ 00:12:05")

	assert.NotContains(t, Chrome{Title: "Resultado"}.Header(100), "⏱")
}

func TestFrame_FillsHeight(t *testing.T) {
	var gotH int
	out := Chrome{Title: "T"}.Frame(100, 30, func(w, h int) string {
		gotH = h
		return strings.Repeat("linha\n", 100)
	})
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Equal(t, 30-6, gotH)
}

func TestTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 40))
	assert.True(t, IsTooSmall(120, 23))
	assert.False(t, IsTooSmall(80, 24))
	assert.Contains(t, TooSmall(60, 20), "atual: 60 x 20")
}
