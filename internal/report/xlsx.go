// Package report exports a solved structure to an Excel workbook.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/solver"
)

// Sheet names, in workbook order
const (
	SheetReactions = "Reactions"
	SheetEquations = "Equations"
	SheetMatrix    = "Matrix"
)

// Workbook is the content of an exported report
type Workbook struct {
	Equations []string
	System    *equation.System
	Solution  solver.Solution
}

// WriteWorkbook saves the reactions, the generated equations and the
// coefficient matrix with its constant column to path.
func WriteWorkbook(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetReactions); err != nil {
		return err
	}
	if err := writeReactions(f, wb.Solution); err != nil {
		return fmt.Errorf("reactions sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetEquations); err != nil {
		return err
	}
	if err := writeEquations(f, wb.Equations); err != nil {
		return fmt.Errorf("equations sheet: %w", err)
	}

	if wb.System != nil {
		if _, err := f.NewSheet(SheetMatrix); err != nil {
			return err
		}
		if err := writeMatrix(f, wb.System); err != nil {
			return fmt.Errorf("matrix sheet: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeReactions(f *excelize.File, sol solver.Solution) error {
	if err := f.SetSheetRow(SheetReactions, "A1", &[]interface{}{"Symbol", "Value"}); err != nil {
		return err
	}
	for i, r := range sol {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetReactions, cell, &[]interface{}{r.Symbol, r.Value}); err != nil {
			return err
		}
	}
	return nil
}

func writeEquations(f *excelize.File, eqs []string) error {
	if err := f.SetSheetRow(SheetEquations, "A1", &[]interface{}{"#", "Equation"}); err != nil {
		return err
	}
	for i, eq := range eqs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetEquations, cell, &[]interface{}{i + 1, eq}); err != nil {
			return err
		}
	}
	return nil
}

func writeMatrix(f *excelize.File, sys *equation.System) error {
	header := make([]interface{}, 0, len(sys.Variables)+1)
	for _, v := range sys.Variables {
		header = append(header, v)
	}
	header = append(header, "=")
	if err := f.SetSheetRow(SheetMatrix, "A1", &header); err != nil {
		return err
	}

	for i, row := range sys.Matrix {
		values := make([]interface{}, 0, len(row)+1)
		for _, c := range row {
			values = append(values, c)
		}
		values = append(values, sys.Constants[i])

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetMatrix, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
