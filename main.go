package main

import "dario.lol/ddns/cmd"

func main() {
	cmd.Execute()
}
