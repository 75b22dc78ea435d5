package main

import "github.com/rsi-mutabaah/mutabaah-backend-go/cmd/mutabaahctl/root"

func main() {
	root.Execute()
}
