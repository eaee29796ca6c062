package main

import (
	"context"

	"monitorboard/cmd/board-cli/commands"
	"monitorboard/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "board-cli")
	telemetry.InitSlog(false)
	commands.ExecuteContext(context.Background())
}
