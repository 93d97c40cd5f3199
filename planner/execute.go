package planner

import (
	"os"
	"path/filepath"

	"github.com/ureddy/rdispatcher/bytesutil"
	"github.com/ureddy/rdispatcher/entity"
	"github.com/ureddy/rdispatcher/fmte"
	rdfs "github.com/ureddy/rdispatcher/fs"
)

// Apply realizes a transfer plan through the given executor: the directory
// skeleton first, in plan order, then every file upload in plan order.
// The first failure aborts all remaining steps.
func Apply(plan *entity.TransferPlan, executor rdfs.Executor) error {
	for _, dir := range plan.Directories {
		fmte.PrintfV("creating remote directory \"%s\"\n", dir)
		if err := executor.CreateDirectory(dir); err != nil {
			return err
		}
	}
	for _, mapping := range plan.Files {
		fmte.Printf("%s [%s]\n", filepath.Base(mapping.LocalPath), localSize(mapping.LocalPath))
		if err := executor.UploadFile(mapping.LocalPath, mapping.RemotePath); err != nil {
			return err
		}
	}
	return nil
}

func localSize(path string) string {
	info, err := os.Lstat(path)
	if err != nil {
		return "?"
	}
	return bytesutil.DecimalFormat(info.Size())
}
