package main

import "github.com/m04kA/SMC-TutorBooking/internal/cli"

func main() {
	cli.Execute()
}
