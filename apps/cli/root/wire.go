package root

import (
	contentcmd "github.com/exchangedesk/fortworth1031/apps/cli/cmd/content"
	leadscmd "github.com/exchangedesk/fortworth1031/apps/cli/cmd/leads"
)

func init() {
	Root().AddCommand(contentcmd.Command())
	Root().AddCommand(leadscmd.Command())
}
