package app

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hypnos/internal/apperr"
	"github.com/ayoisaiah/hypnos/internal/device"
	"github.com/ayoisaiah/hypnos/internal/nvram"
	"github.com/ayoisaiah/hypnos/internal/timetable"
	"github.com/ayoisaiah/hypnos/internal/ui"
)

var (
	errMissingArgs = &apperr.Error{
		Message: "expected %s",
	}

	errInvalidHex = &apperr.Error{
		Message: "value must be hex encoded",
	}
)

// charListAction prints every characteristic with its current raw value.
func charListAction(ctx *cli.Context, e *environment) error {
	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	svc := e.service()

	rows := [][]string{{"ID", "NAME", "VALUE"}}

	ids := map[string]string{}
	for _, entry := range e.tt.Schema().Entries() {
		ids[entry.Name] = fmt.Sprintf("%#02x", uint8(entry.ID))
	}

	ids["unix_time"] = fmt.Sprintf("%#02x", uint8(timetable.IDUnixTime))

	for _, name := range svc.Names() {
		value, err := svc.Read(name)
		if err != nil {
			return err
		}

		rows = append(rows, []string{ids[name], ui.Cyan(name), hexOrEmpty(value)})
	}

	ui.PrintTable(rows, os.Stdout)

	return nil
}

func hexOrEmpty(b []byte) string {
	if len(b) == 0 {
		return "(empty)"
	}

	return hex.EncodeToString(b)
}

// charReadAction prints the raw value of one characteristic.
func charReadAction(ctx *cli.Context, e *environment) error {
	if ctx.NArg() != 1 {
		return errMissingArgs.Fmt("a characteristic name or id")
	}

	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	value, err := e.service().Read(ctx.Args().First())
	if err != nil {
		return err
	}

	pterm.Println(hex.EncodeToString(value))

	return nil
}

// charWriteAction writes a raw value the way a remote client would. The
// timetable is stored when the field accepts the value.
func charWriteAction(ctx *cli.Context, e *environment) error {
	if ctx.NArg() != 2 {
		return errMissingArgs.Fmt("a characteristic name or id and a hex value")
	}

	if _, err := e.restore(ctx.Context); err != nil {
		return err
	}

	name := ctx.Args().Get(0)
	raw := strings.TrimPrefix(strings.ReplaceAll(ctx.Args().Get(1), " ", ""), "0x")

	buf, err := hex.DecodeString(raw)
	if err != nil {
		return errInvalidHex.Wrap(err)
	}

	if err := e.service().Write(name, buf); err != nil {
		return err
	}

	slog.InfoContext(ctx.Context, "characteristic written",
		slog.String("name", name),
		slog.String("value", hexOrEmpty(buf)),
	)

	if err := e.save(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Printfln("%s written", name)

	return nil
}

// eepromDumpAction prints the raw stored block and where every field
// lives in it.
func eepromDumpAction(ctx *cli.Context, e *environment) error {
	schema := e.tt.Schema()

	block, err := e.nv.Read(schema)
	if err != nil {
		return err
	}

	pterm.Print(hex.Dump(block))

	check := *e.tt
	if err := nvram.Decode(check.Schema(), block); err != nil {
		pterm.Warning.Println(err)
	}

	rows := [][]string{{"ID", "FIELD", "OFFSET", "WIDTH"}}

	// the layout is relative to the payload, which follows the version byte
	for _, slot := range schema.Layout() {
		rows = append(rows, []string{
			fmt.Sprintf("%#02x", uint8(slot.ID)),
			slot.Name,
			fmt.Sprintf("%d", slot.Offset+1),
			fmt.Sprintf("%d", slot.Width),
		})
	}

	ui.PrintTable(rows, os.Stdout)

	pterm.Info.Printfln(
		"schema version %d, %d of %d bytes used",
		schema.Version,
		nvram.BlockSize(schema),
		device.UserEEPROMSize,
	)

	slog.DebugContext(ctx.Context, "eeprom dumped", slog.Int("bytes", len(block)))

	return nil
}

// eepromEraseAction wipes the user EEPROM.
func eepromEraseAction(ctx *cli.Context, e *environment) error {
	if err := e.db.EraseEEPROM(); err != nil {
		return err
	}

	slog.InfoContext(ctx.Context, "eeprom erased")

	pterm.Success.Println("EEPROM erased: the next boot uses the configured defaults")

	return nil
}
