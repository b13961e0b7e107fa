// main.go
package main

import "google-reviews/cmd"

func main() {
	cmd.Execute()
}
