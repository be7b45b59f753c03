package main

import "github.com/Koipioy/forkcast-backend/cmd"

func main() {
	cmd.Execute()
}
