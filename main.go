package main

import "github.com/edumanage/school-management/cmd"

func main() {
	cmd.Execute()
}
