package ffprobe

import "os/exec"

var commandContext = exec.CommandContext
