// oltcmd 命令行：浏览 OLT 命令目录、填写参数并复制
package main

import (
	"fmt"
	"os"
)

func main() {
	a := &app{}
	root := a.rootCommand()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
