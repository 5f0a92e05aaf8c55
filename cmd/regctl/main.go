// Command regctl reads and writes values in a reg-api store from the shell.
package main

func main() {
	execute()
}
