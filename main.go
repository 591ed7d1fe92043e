package main

import "github.com/kidoz/zabbix-template-lint-go/cmd"

func main() {
	cmd.Execute()
}
