// sns-launch converts and validates SNS launch documents.
package main

import (
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd"
)

func main() {
	cmd.Execute()
}
