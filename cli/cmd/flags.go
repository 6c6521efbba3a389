package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/ecstasy/style"
)

// Flags lists the style flags of the registry.
type Flags struct {
	Category []string `arg:"" help:"Only list flags of these categories (attr, color or fg, fill or bg)." optional:""`
	Format   string   `default:"table" enum:"table,json,yaml" help:"Output format (${enum})." short:"o"`
}

// flagInfo is the encoded form of one flag.
type flagInfo struct {
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name"     yaml:"name"`
	Code     int    `json:"code"     yaml:"code"`
	Bit      int    `json:"bit"      yaml:"bit"`
	Value    uint64 `json:"value"    yaml:"value"`
}

// Run executes the flags command.
func (f *Flags) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	list, err := f.flags()
	if err != nil {
		return err
	}

	if f.Format == "table" {
		_, err = fmt.Fprintln(env.Out, flagTable(list, env.Color))

		return err
	}

	info := make([]flagInfo, len(list))
	for i, fl := range list {
		info[i] = flagInfo{
			Category: fl.Category.String(),
			Name:     fl.Name,
			Code:     fl.Code,
			Bit:      bits.TrailingZeros64(uint64(fl.Bit)),
			Value:    uint64(fl.Bit),
		}
	}

	data, err := encode(f.Format, 2, info)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.Out, string(data))

	return err
}

// flags returns the registry flags in the selected categories, in bit order.
func (f *Flags) flags() ([]style.Flag, error) {
	want := make(map[style.Category]bool)

	for _, name := range f.Category {
		cat, ok := style.ParseCategory(name)
		if !ok {
			return nil, ErrCategory.With(slog.String("category", name))
		}

		want[cat] = true
	}

	var list []style.Flag

	reg := style.Default()

	for _, cat := range style.Categories() {
		if len(f.Category) > 0 && !want[cat] {
			continue
		}

		for _, name := range reg.Names(cat) {
			if fl, ok := reg.Lookup(cat, name); ok {
				list = append(list, fl)
			}
		}
	}

	return list, nil
}

// flagTable renders list as a bordered table. With color enabled, each row
// carries a sample of its own style.
func flagTable(list []style.Flag, color bool) string {
	headers := []string{"BIT", "CATEGORY", "NAME", "CODE"}
	if color {
		headers = append(headers, "SAMPLE")
	}

	rows := make([][]string, 0, len(list))

	for _, fl := range list {
		row := []string{
			strconv.Itoa(bits.TrailingZeros64(uint64(fl.Bit))),
			fl.Category.String(),
			fl.Name,
			strconv.Itoa(fl.Code),
		}

		if color {
			row = append(row, "\033["+strconv.Itoa(fl.Code)+"m"+fl.String()+"\033[0m")
		}

		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(color).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		}).
		String()
}
