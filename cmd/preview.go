package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gosheet/config"
	"gosheet/dataset"
	"gosheet/output"
)

var (
	previewFrom     string
	previewTo       string
	previewSheet    string
	previewNoPrefix bool
	previewExport   string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show generated sheets without writing a workbook",
	Long: `Generate the sheets for a date range in memory and print them.

Without --sheet, every sheet is listed with its row and column counts.
With --sheet, the rows of that sheet are printed as a table.
With --export, the raw rows are also written to a csv or xlsx file without styling.`,
	Example: `
  # List the sheets of one day
  gosheet preview --from 2026-02-01

  # Print one sheet
  gosheet preview --from 2026-02-01 --sheet 2月1日昼

  # Dump raw rows of a week to CSV
  gosheet preview --from 2026-02-01 --to 2026-02-07 --export ./rows.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		doc, err := buildWorkbook(cfg, workbookOptions{
			From:     previewFrom,
			To:       previewTo,
			NoPrefix: previewNoPrefix,
		})
		if err != nil {
			return err
		}

		if previewSheet == "" {
			if err := renderSheetList(os.Stdout, doc); err != nil {
				return err
			}
		} else {
			data, err := doc.SheetData(previewSheet)
			if err != nil {
				return err
			}
			if err := renderDataset(os.Stdout, data); err != nil {
				return err
			}
		}

		if previewExport != "" {
			format := output.FormatFromPath(previewExport)
			if err := doc.Export(previewExport, format); err != nil {
				return err
			}
			fmt.Printf("Raw export written. Format: %s, File: %s\n", format, previewExport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewFrom, "from", "", "First day (YYYY-MM-DD, YYYY/MM/DD or YYYYMMDD)")
	previewCmd.Flags().StringVar(&previewTo, "to", "", "Last day, inclusive (default: --from)")
	previewCmd.Flags().StringVar(&previewSheet, "sheet", "", "Print the rows of this sheet")
	previewCmd.Flags().BoolVar(&previewNoPrefix, "no-prefix", false, "Name sheets without the month prefix")
	previewCmd.Flags().StringVar(&previewExport, "export", "", "Also write raw rows to this csv or xlsx file")

	_ = previewCmd.MarkFlagRequired("from")
}

func renderSheetList(w io.Writer, doc *output.Document) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Sheet", "Rows", "Columns", "Header rows")
	for i, name := range doc.ListSheets() {
		info, err := doc.SheetInfo(name)
		if err != nil {
			return err
		}
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			info.Name,
			strconv.Itoa(info.Rows),
			strconv.Itoa(info.Columns),
			strconv.Itoa(info.HeaderRows),
		}); err != nil {
			return fmt.Errorf("append sheet row: %w", err)
		}
	}
	return table.Render()
}

func renderDataset(w io.Writer, data *dataset.Dataset) error {
	columns := data.Columns()
	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	scrubbed := data.Scrub()
	for i := 0; i < scrubbed.Len(); i++ {
		row := scrubbed.Row(i)
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = fmt.Sprint(value)
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("append row %d: %w", i+1, err)
		}
	}
	return table.Render()
}
