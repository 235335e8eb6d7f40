package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006-01-02"

var printer = message.NewPrinter(language.English)

// money formats an amount with thousands separators, eg. 6,000,000 VND.
func (cli *commandLine) money(amount float64) string {
	return printer.Sprintf("%.0f %s", amount, cli.app.conf.Currency)
}

func score(f float64) string {
	return printer.Sprintf("%.2f", f)
}

func percent(rate float64) string {
	return printer.Sprintf("%.0f%%", rate*100)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// table prints rows under header with columns aligned on display width.
func (cli *commandLine) table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
			} else {
				padded[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		cli.println(strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	printRow(header)
	seps := make([]string, len(header))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
	if len(rows) == 0 {
		cli.println("(none)")
	}
}
