package main

import (
	"fmt"
	"os"

	"golang.zabbix.com/sdk/plugin"
	"golang.zabbix.com/sdk/plugin/container"

	"github.com/kidoz/zabbix-template-lint-go/internal/agent2"
)

func main() {
	p := agent2.NewPlugin()

	err := plugin.RegisterMetrics(
		p, "ZabbixTemplateLint",
		"ztl.templates.discovery", "Returns LLD JSON for discovered template files.",
		"ztl.templates.total", "Returns the number of validated template files.",
		"ztl.templates.failed", "Returns the number of template files that failed validation.",
		"ztl.template.passed", "Returns 1 if the given template file passed validation.",
		"ztl.template.errors", "Returns the error count for the given template file.",
		"ztl.template.warnings", "Returns the warning count for the given template file.",
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register metrics: %s\n", err)
		os.Exit(1)
	}

	h, err := container.NewHandler("ZabbixTemplateLint")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create handler: %s\n", err)
		os.Exit(1)
	}

	if err := h.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "plugin execution failed: %s\n", err)
		os.Exit(1)
	}
}
