package entity

import (
	"fmt"

	"github.com/oxhq/detectsim/internal/match"
	"github.com/oxhq/detectsim/internal/report"
)

// File is one parsed source file. Classes holds its classes (for Go, its
// named types with their methods); TopLevelFunctions holds functions declared
// outside any class (filled by every adapter, Go included);
// TopLevelStatements holds module-level code outside any declaration (filled
// by the Python, JavaScript and TypeScript adapters). Imports is never
// compared, and no adapter fills it.
type File struct {
	FileName           string
	Path               string
	Classes            []*Class
	TopLevelFunctions  []*Method
	TopLevelStatements []*StatementBlock
	Imports            []string
	Project            *Project
}

func NewFile(name, path string, classes []*Class, topFuncs []*Method, topStmts []*StatementBlock, imports []string, proj *Project) *File {
	return &File{
		FileName:           name,
		Path:               path,
		Classes:            classes,
		TopLevelFunctions:  topFuncs,
		TopLevelStatements: topStmts,
		Imports:            imports,
		Project:            proj,
	}
}

func (f *File) Name() string    { return f.FileName }
func (f *File) Visualise() bool { return true }
func (f *File) Kind() string    { return KindFile }

func (f *File) Compare(other report.Entity, fastScan bool) report.Report {
	o, ok := other.(*File)
	if !ok {
		panic(fmt.Sprintf("entity: cannot compare File with %T", other))
	}
	cfg := f.Project.Cfg

	acc := match.Collection(f, o, f.Classes, o.Classes, fastScan, cfg, Missing,
		func(x, y *Class, fs bool) report.Report { return x.Compare(y, fs) })

	if len(f.TopLevelFunctions) > 0 || len(o.TopLevelFunctions) > 0 {
		funcReport := match.Collection(f, o, f.TopLevelFunctions, o.TopLevelFunctions, fastScan, cfg, Missing,
			func(x, y *Method, fs bool) report.Report { return x.Compare(y, fs) })
		acc = report.Combine(acc, funcReport)
	}

	if len(f.TopLevelStatements) > 0 || len(o.TopLevelStatements) > 0 {
		stmtReport := match.Collection(f, o, f.TopLevelStatements, o.TopLevelStatements, fastScan, cfg, Missing,
			func(x, y *StatementBlock, fs bool) report.Report { return x.Compare(y, fs) })
		acc = report.Combine(acc, stmtReport)
	}

	return acc
}
