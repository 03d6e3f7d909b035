package line

import (
	"fmt"
	"time"

	"github.com/884js/freee-line-notifier/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var jpyPrinter = message.NewPrinter(language.Japanese)

// formatYen renders an amount as grouped Japanese yen, e.g. "￥1,234,567".
func formatYen(amount int64) string {
	return jpyPrinter.Sprintf("￥%d", amount)
}

// formatPercent renders a rate with one decimal and an explicit plus sign
// on positive values, e.g. "+12.5%".
func formatPercent(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.1f%%", value)
	}
	return fmt.Sprintf("%.1f%%", value)
}

func growthIcon(rate float64) string {
	switch {
	case rate > 10:
		return "📈"
	case rate > 0:
		return "📊"
	case rate == 0:
		return "➡️"
	default:
		return "📉"
	}
}

// NewDailyReportMessage renders an assembled daily report as a flex bubble
// with a one-line text fallback.
func NewDailyReportMessage(report *domain.DailyReport, now time.Time) FlexMessage {
	progress := report.MonthlyProgress

	altText := fmt.Sprintf("%s 累計売上%s(%s) 利益%s 要領収書%d件",
		now.Format("2006/01/02"),
		formatYen(progress.CurrentSales),
		formatPercent(progress.SalesGrowthRate),
		formatYen(progress.CurrentProfit),
		len(report.Deals))

	contents := []FlexComponent{
		FlexText{Type: "text", Text: "デイリーレポート", Weight: "bold", Size: "xl"},
		separator("sm"),
		monthlyProgressBox(progress, report.FiscalYear),
		separator("sm"),
		expenseBreakdownBox(report.ExpenseBreakdown),
		separator("sm"),
		taxEstimateBox(report.TaxEstimate),
		separator("sm"),
		flaggedDealsBox(len(report.Deals)),
	}

	return FlexMessage{
		Type:    "flex",
		AltText: altText,
		Contents: FlexContainer{
			Type: "bubble",
			Body: &FlexBox{
				Type:     "box",
				Layout:   "vertical",
				Contents: contents,
			},
		},
	}
}

func monthlyProgressBox(progress domain.MonthlyProgress, fiscalYear int) FlexBox {
	salesColor := "#00c73c"
	if progress.SalesGrowthRate < 0 {
		salesColor = "#ff4444"
	}
	marginColor := "#666666"
	if progress.ProfitMargin > 20 {
		marginColor = "#00c73c"
	}
	profitColor := "#00c73c"
	if progress.CurrentProfit < 0 {
		profitColor = "#ff4444"
	}

	return FlexBox{
		Type:   "box",
		Layout: "vertical",
		Contents: []FlexComponent{
			FlexText{Type: "text", Text: fmt.Sprintf("%d年 損益", fiscalYear), Weight: "bold", Size: "lg", Margin: "sm"},
			separator("sm"),
			labelledRow("💰 売上",
				fmt.Sprintf("%s %s", growthIcon(progress.SalesGrowthRate), formatPercent(progress.SalesGrowthRate)),
				salesColor),
			FlexText{Type: "text", Text: formatYen(progress.CurrentSales), Size: "xl", Weight: "bold", Align: "end"},
			separator("sm"),
			labelledRow("💸 経費",
				fmt.Sprintf("月+%s", formatYen(progress.MonthlyExpenseIncrease)),
				"#999999"),
			FlexText{Type: "text", Text: formatYen(progress.CurrentExpenses), Size: "md", Weight: "bold", Align: "end"},
			separator("sm"),
			labelledRow("📊 利益",
				fmt.Sprintf("利益率 %.1f%%", progress.ProfitMargin),
				marginColor),
			FlexText{Type: "text", Text: formatYen(progress.CurrentProfit), Size: "xl", Weight: "bold", Align: "end", Color: profitColor},
		},
	}
}

func expenseBreakdownBox(breakdown []domain.ExpenseItem) FlexBox {
	contents := []FlexComponent{
		FlexText{Type: "text", Text: "経費内訳", Weight: "bold", Size: "sm", Margin: "sm"},
		separator("sm"),
	}

	if len(breakdown) == 0 {
		contents = append(contents, FlexText{
			Type: "text", Text: "経費データがありません", Size: "xs", Color: "#999999", Margin: "sm",
		})
	}

	// The bubble stays readable with the largest items only.
	const maxItems = 5
	for i, item := range breakdown {
		if i == maxItems {
			break
		}
		contents = append(contents, amountRow(item.Name, formatYen(item.Amount), ""))
	}

	return FlexBox{Type: "box", Layout: "vertical", Contents: contents}
}

func taxEstimateBox(estimate domain.TaxEstimate) FlexBox {
	taxColor := "#00c73c"
	if estimate.EstimatedTax > 0 {
		taxColor = "#ff4444"
	}

	contents := []FlexComponent{
		FlexText{Type: "text", Text: "【参考】所得税", Weight: "bold", Size: "sm", Margin: "sm"},
		separator("sm"),
		amountRow("所得", formatYen(estimate.Income), ""),
		amountRow("課税所得", formatYen(estimate.TaxableIncome), ""),
		amountRow("概算所得税", formatYen(estimate.EstimatedTax), taxColor),
		FlexText{Type: "text", Text: fmt.Sprintf("税率 %.0f%%", estimate.CurrentRate), Size: "xxs", Color: "#666666", Margin: "sm"},
	}

	// Only worth showing when there is a lower bracket left to reach and
	// spending more would actually get there.
	if estimate.HasLowerBracket && estimate.AmountToNextBracket > 0 {
		contents = append(contents, FlexText{
			Type: "text",
			Text: fmt.Sprintf("あと%sの経費で税率%.0f%%へ", formatYen(estimate.AmountToNextBracket), estimate.NextRate),
			Size: "xxs", Color: "#666666",
		})
	}

	contents = append(contents, FlexText{
		Type: "text", Text: "※基礎控除+青色申告控除のみ", Size: "xxs", Color: "#999999", Margin: "sm",
	})

	return FlexBox{Type: "box", Layout: "vertical", Contents: contents}
}

func flaggedDealsBox(count int) FlexBox {
	countColor := "#00c73c"
	if count > 0 {
		countColor = "#ff4444"
	}

	return FlexBox{
		Type:   "box",
		Layout: "horizontal",
		Margin: "sm",
		Contents: []FlexComponent{
			FlexText{Type: "text", Text: "領収書が必要な取引", Flex: flexInt(1), Size: "sm", Color: "#666666", Weight: "bold"},
			FlexText{Type: "text", Text: fmt.Sprintf("%d件", count), Flex: flexInt(0), Size: "sm", Align: "end", Weight: "bold", Color: countColor},
		},
	}
}

func labelledRow(label, value, valueColor string) FlexBox {
	return FlexBox{
		Type:   "box",
		Layout: "horizontal",
		Margin: "sm",
		Contents: []FlexComponent{
			FlexText{Type: "text", Text: label, Flex: flexInt(1), Size: "sm", Color: "#666666"},
			FlexText{Type: "text", Text: value, Flex: flexInt(0), Size: "xs", Color: valueColor},
		},
	}
}

func amountRow(label, value, valueColor string) FlexBox {
	return FlexBox{
		Type:   "box",
		Layout: "horizontal",
		Margin: "sm",
		Contents: []FlexComponent{
			FlexText{Type: "text", Text: label, Flex: flexInt(1), Size: "xs", Color: "#666666"},
			FlexText{Type: "text", Text: value, Flex: flexInt(0), Size: "xs", Align: "end", Color: valueColor},
		},
	}
}
