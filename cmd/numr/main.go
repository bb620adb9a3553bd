// Command numr evaluates text-calculator documents: lines of
// arithmetic over plain numbers, percentages, physical quantities, and
// money. See the eval, run, and serve subcommands.
package main

func main() {
	Execute()
}
