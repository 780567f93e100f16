package testutil

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
)

// RC is one foundRC/loadedRC entry of `direnv status --json`.
type RC struct {
	Allowed int
	Path    string
}

// StatusJSON builds `direnv status --json` output. A nil entry is written as null.
func StatusJSON(found, loaded *RC) string {
	out := `{}`
	out, _ = sjson.Set(out, "config.ConfigDir", "/home/test/.config/direnv")
	out, _ = sjson.Set(out, "config.SelfPath", "/usr/bin/direnv")
	out = setRC(out, "state.foundRC", found)
	out = setRC(out, "state.loadedRC", loaded)
	return out
}

func setRC(doc, key string, rc *RC) string {
	if rc == nil {
		doc, _ = sjson.SetRaw(doc, key, "null")
		return doc
	}
	doc, _ = sjson.Set(doc, key+".allowed", rc.Allowed)
	doc, _ = sjson.Set(doc, key+".path", rc.Path)
	return doc
}

// LegacyRC is one Found/Loaded block of pre-2.33 `direnv status` output.
// Allowed is written verbatim, e.g. "0", "true" or "false".
type LegacyRC struct {
	Allowed string
	Path    string
}

// LegacyStatus builds pre-2.33 `direnv status` output, including the
// diagnostic lines direnv prints around the state.
func LegacyStatus(found, loaded *LegacyRC) string {
	var b strings.Builder
	b.WriteString(`direnv exec path /usr/bin/direnv
DIRENV_CONFIG /home/test/.config/direnv
bash_path /usr/bin/bash
disable_stdin false
warn_timeout 5s
whitelist.prefix []
whitelist.exact map[]
`)
	if loaded == nil {
		b.WriteString("No .envrc or .env loaded\n")
	} else {
		fmt.Fprintf(&b, "Loaded RC path %s\n", loaded.Path)
		b.WriteString(`Loaded watch: ".envrc" - 2023-04-30T09:51:04-04:00` + "\n")
		b.WriteString(`Loaded watch: "../.local/share/direnv/allow/abcd" - 2023-04-30T09:52:58-04:00` + "\n")
		fmt.Fprintf(&b, "Loaded RC allowed %s\n", loaded.Allowed)
		b.WriteString("Loaded RC allowPath\n")
	}
	if found == nil {
		b.WriteString("No .envrc or .env found")
	} else {
		fmt.Fprintf(&b, "Found RC path %s\n", found.Path)
		b.WriteString(`Found watch: ".envrc" - 2023-04-25T18:45:54-04:00` + "\n")
		b.WriteString(`Found watch: "../.local/share/direnv/allow/abcd" - 1969-12-31T19:00:00-05:00` + "\n")
		fmt.Fprintf(&b, "Found RC allowed %s\n", found.Allowed)
		b.WriteString("Found RC allowPath /home/test/.local/share/direnv/allow/abcd\n")
	}
	return b.String()
}
