// Command vo inspects and exercises the video output pipeline.
package main

import "github.com/gogpu/vo/cmd/vo/commands"

func main() {
	commands.Execute()
}
