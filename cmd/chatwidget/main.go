// Command chatwidget is the terminal chat widget and its backend service.
package main

import "github.com/diogo/chatwidget/internal/commands"

func main() {
	commands.Execute()
}
