//go:build !unix

package symbols

import "os"

type stat struct{}

func statFromFileInfo(os.FileInfo) stat { return stat{} }
