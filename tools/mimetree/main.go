package main

import (
	"github.com/zostay/go-mime/tools/mimetree/cmd"
)

func main() {
	cmd.Execute()
}
