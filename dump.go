package masterbatch

import (
	"fmt"
	"io"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Dump prints v to stdout prefixed with the caller's location.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	dumpConfig.Dump(append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)...)
}

// Fdump is Dump to w, without the caller prefix.
func Fdump(w io.Writer, v ...any) {
	dumpConfig.Fdump(w, v...)
}
