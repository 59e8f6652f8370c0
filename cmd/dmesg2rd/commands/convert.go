package commands

import (
	"fmt"
	"os"

	"github.com/laanwj/freedreno/internal/config"
	"github.com/laanwj/freedreno/internal/dmesg"
	"github.com/laanwj/freedreno/internal/logging"
	"github.com/laanwj/freedreno/internal/rd"
)

// runConvert reads a dmesg capture, reconstructs the dumped command buffers
// and writes them as an rd container. On failure, bytes already written to
// the output are not retracted; the non-zero exit tells the caller to discard
// the file.
func runConvert(inPath, outPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	bufs, err := dmesg.NewParser().Parse(in)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inPath, err)
	}
	logging.Infof("parsed %d buffers from %s", len(bufs), inPath)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	enc := rd.NewEncoder(out)
	enc.GPUID = cfg.GPU.ID
	if err := enc.Encode(bufs); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logging.Infof("wrote %s", outPath)
	return nil
}
