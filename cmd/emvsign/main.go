// Command emvsign is a terminal-side EMV chip card diagnostic tool: it
// speaks to a contact or contactless card through a PC/SC reader,
// discovers its payment application, and validates the card's Offline
// Data Authentication certificate chain.
package main

import "github.com/barnettlynn/emvsign/internal/cli"

func main() {
	cli.Execute()
}
