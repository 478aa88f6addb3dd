// PipeCut - Pipe and Profile Cut Planner
//
// Plans how to cut required lengths from fixed-length stock (pipes, tubes,
// profiles) with as few stock units as possible, and reports the plan as
// text, JSON, PDF cut sheets, QR labels or an Excel workbook.
//
// Build:
//
//	go build -o pipecut ./cmd/pipecut
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var (
		projectFile   = flag.String("project", "", "Path to a .pipecut project file")
		demandsFile   = flag.String("demands", "", "Path to a CSV, XLSX or DXF file with required cuts")
		name          = flag.String("name", "", "Project label for imported cuts")
		libraryFile   = flag.String("library", "", "Path to the material library (default ~/.pipecut/materials.json)")
		importLibrary = flag.String("import-library", "", "Merge materials from this library file into the library")
		configFile    = flag.String("config", "", "Path to the app config (default ~/.pipecut/config.json)")
		trim          = flag.Float64("trim", 0, "Override the trim allowance per stock unit in mm")
		kerf          = flag.Float64("kerf", 0, "Override the saw kerf in mm")
		format        = flag.String("format", "text", "Output format: text, json")
		pdfOut        = flag.String("pdf", "", "Write PDF cut sheets to this path")
		labelsOut     = flag.String("labels", "", "Write QR cut labels to this path")
		xlsxOut       = flag.String("xlsx", "", "Write an Excel workbook to this path")
		saveProject   = flag.String("save", "", "Save materials, cuts and settings as a project file")
		compare       = flag.Bool("compare", false, "Compare the plan against thinner kerf and no trim")
		backupOut     = flag.String("backup", "", "Export config and library to a backup file and exit")
		restoreIn     = flag.String("restore", "", "Restore config and library from a backup file and exit")
	)
	flag.Parse()

	cfg := Config{
		ProjectFile:   *projectFile,
		DemandsFile:   *demandsFile,
		Name:          *name,
		LibraryFile:   *libraryFile,
		ImportLibrary: *importLibrary,
		ConfigFile:    *configFile,
		Format:        *format,
		PDFOut:        *pdfOut,
		LabelsOut:     *labelsOut,
		XLSXOut:       *xlsxOut,
		SaveProject:   *saveProject,
		Compare:       *compare,
		BackupOut:     *backupOut,
		RestoreIn:     *restoreIn,
	}

	// Only explicitly passed allowances override the project or app config.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trim":
			cfg.Trim = trim
		case "kerf":
			cfg.Kerf = kerf
		}
	})

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
