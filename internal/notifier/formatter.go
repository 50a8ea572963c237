package notifier

import (
	"fmt"
	"math"
	"strings"

	"SignalSentry/internal/model"
	"SignalSentry/internal/scanner"
)

// FormatSignal formats a trading signal into a Telegram message.
func FormatSignal(sig *model.Signal) string {
	var b strings.Builder

	emoji := "🟢"
	if sig.Direction == model.DirectionSell {
		emoji = "🔴"
	}

	b.WriteString(fmt.Sprintf("%s <b>%s SIGNAL - %s</b>\n\n", emoji, sig.Direction, sig.Symbol))
	b.WriteString(fmt.Sprintf("📊 <b>Pattern:</b> %s (%s)\n", sig.Pattern.Name, sig.Pattern.Strength))
	b.WriteString(fmt.Sprintf("🎯 <b>S/R Context:</b> Price at %s (%.2f)\n\n", sig.SRKind, sig.SRLevel))

	b.WriteString(fmt.Sprintf("💰 <b>Entry:</b> %.2f\n", sig.Entry))
	b.WriteString(fmt.Sprintf("🛑 <b>Stop Loss:</b> %.2f (-%.2f)\n", sig.StopLoss, math.Abs(sig.Entry-sig.StopLoss)))
	b.WriteString(fmt.Sprintf("🎯 <b>Target 1:</b> %.2f (+%.2f)\n", sig.Target1, math.Abs(sig.Target1-sig.Entry)))
	b.WriteString(fmt.Sprintf("🎯 <b>Target 2:</b> %.2f (+%.2f)\n\n", sig.Target2, math.Abs(sig.Target2-sig.Entry)))

	b.WriteString(fmt.Sprintf("📈 <b>Risk:Reward:</b> 1:%.2f\n\n", sig.RiskReward))

	b.WriteString("✅ <b>Confirmations:</b>\n")
	b.WriteString(fmt.Sprintf("• %s\n\n", strings.Join(confirmationNotes(sig), ", ")))

	b.WriteString("🏗 <b>Structure:</b>\n")
	b.WriteString(fmt.Sprintf("• %s (Score: %d/3)\n\n", strings.Join(structureNotes(sig.Structure), ", "), sig.StructureScore))

	b.WriteString(fmt.Sprintf("⏰ <b>Time:</b> %s\n", sig.Timestamp.Format("15:04")))
	return b.String()
}

func confirmationNotes(sig *model.Signal) []string {
	var notes []string
	if sig.Confirmation.RSIConfirmed {
		notes = append(notes, fmt.Sprintf("RSI %.1f", sig.Confirmation.RSIValue))
	}
	if sig.Confirmation.VolumeConfirmed {
		notes = append(notes, fmt.Sprintf("Volume %.1fx", sig.Confirmation.VolumeRatio))
	}
	if len(notes) == 0 {
		notes = append(notes, "None")
	}
	return notes
}

func structureNotes(set model.StructureSet) []string {
	var notes []string
	if len(set.OrderBlocks) > 0 {
		notes = append(notes, "Order Block")
	}
	if len(set.LiquidityGrabs) > 0 {
		notes = append(notes, "Liquidity Grab")
	}
	if len(set.BreakRetests) > 0 {
		notes = append(notes, "Break & Retest")
	}
	if len(notes) == 0 {
		notes = append(notes, "None")
	}
	return notes
}

// FormatScanReport summarizes one universe scan.
func FormatScanReport(report *model.ScanReport) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Scan Complete</b>\n\n")
	b.WriteString(fmt.Sprintf("Symbols: %d\n", report.SymbolsScanned))
	b.WriteString(fmt.Sprintf("Signals: %d\n", report.SignalsFound))
	b.WriteString(fmt.Sprintf("Errors: %d\n", report.Errors))
	b.WriteString(fmt.Sprintf("Duration: %.1fs\n", report.Duration.Seconds()))
	return b.String()
}

// FormatStatus formats bot and scan performance state for display.
func FormatStatus(running bool, marketOpen bool, source string, stats scanner.Stats) string {
	var b strings.Builder
	b.WriteString("🤖 <b>Bot Status</b>\n\n")

	state := "⏸ Paused"
	if running {
		state = "▶️ Running"
	}
	b.WriteString(fmt.Sprintf("Scanning: %s\n", state))

	market := "Closed"
	if marketOpen {
		market = "Open"
	}
	b.WriteString(fmt.Sprintf("Market: %s\n", market))
	b.WriteString(fmt.Sprintf("Data Source: %s\n\n", source))

	b.WriteString(fmt.Sprintf("Scans: %d\n", stats.TotalScans))
	b.WriteString(fmt.Sprintf("Signals Found: %d\n", stats.SignalsFound))
	b.WriteString(fmt.Sprintf("API Calls: %d\n", stats.APICalls))
	b.WriteString(fmt.Sprintf("Errors: %d\n", stats.Errors))
	if stats.TotalScans > 0 {
		b.WriteString(fmt.Sprintf("Avg Scan: %.1fs\n", stats.AvgScanDuration.Seconds()))
		b.WriteString(fmt.Sprintf("Last Scan: %.1fs\n", stats.LastScanTime.Seconds()))
	}
	return b.String()
}
