// Command pagesim replays page reference strings under FIFO, LRU, MRU and
// OPTIMAL replacement.
package main

import "github.com/sarchlab/pagesim/pagesim/cmd"

func main() {
	cmd.Execute()
}
