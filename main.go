package main

import "mailrecon/cmd"

func main() {
	cmd.Execute()
}
