package main

import "blogdesk/cmd/blogctl/command"

func main() {
	command.Execute()
}
