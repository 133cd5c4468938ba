// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/sseindex/sseindex-server/cmd"

func main() {
	cmd.Execute()
}
