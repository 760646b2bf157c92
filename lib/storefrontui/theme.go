// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette of the storefront. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Prices and totals.
	PriceForeground lipgloss.Color

	// Stock and countdown states.
	Plenty  lipgloss.Color
	Scarce  lipgloss.Color
	Exhaust lipgloss.Color

	// Buyer-facing error line.
	ErrorForeground lipgloss.Color

	// Payment code box.
	CodeForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in palette for dark terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),

	PriceForeground: lipgloss.Color("214"),

	Plenty:  lipgloss.Color("114"),
	Scarce:  lipgloss.Color("220"),
	Exhaust: lipgloss.Color("203"),

	ErrorForeground: lipgloss.Color("203"),

	CodeForeground: lipgloss.Color("231"),

	HeaderForeground: lipgloss.Color("213"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("245"),
}

// scarceStock is the remaining count at or below which stock is shown
// as running low.
const scarceStock = 10

// StockColor returns the color for a remaining ticket count. Negative
// counts (unknown) render faint.
func (theme Theme) StockColor(remaining int) lipgloss.Color {
	switch {
	case remaining < 0:
		return theme.FaintText
	case remaining == 0:
		return theme.Exhaust
	case remaining <= scarceStock:
		return theme.Scarce
	}
	return theme.Plenty
}

// CountdownColor returns the color for the hold countdown: normal
// until the last three minutes, then amber, then red for the final
// minute.
func (theme Theme) CountdownColor(seconds int) lipgloss.Color {
	switch {
	case seconds <= 60:
		return theme.Exhaust
	case seconds <= 180:
		return theme.Scarce
	}
	return theme.NormalText
}
