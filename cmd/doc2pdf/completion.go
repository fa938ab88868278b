package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell is a shell completion scripts can be generated for.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType is how a flag's value is completed.
type flagType int

const (
	flagString flagType = iota // takes a value, nothing to suggest
	flagBool                   // takes no value
	flagEnum                   // one of Values
	flagFile                   // file matching FileGlob
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob []string
	Repeat   bool // may be given more than once (-vv)
}

// completionMeta holds what the FlagSet cannot tell: enum values and
// file patterns. Names, types and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob []string
}

var flagCompletionMeta = map[string]completionMeta{
	"page-size":   {Values: []string{"letter", "a4", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},
	"source-ext":  {Values: []string{".html", ".htm", ".md", ".markdown"}},
	"completion":  {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}},

	"config":      {FileGlob: []string{"*.yaml", "*.yml"}},
	"browser-bin": {FileGlob: []string{"*"}},
}

// extractFlags lists the flags of fs, enriched with flagCompletionMeta.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var defs []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "count":
			fd.Type = flagBool
			fd.Repeat = true
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if len(meta.FileGlob) > 0 {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			}
		}

		defs = append(defs, fd)
	})

	return defs
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	fs, _ := newFlagSet()
	defs := extractFlags(fs)

	switch shell {
	case ShellBash:
		return generateBash(w, defs)
	case ShellZsh:
		return generateZsh(w, defs)
	case ShellFish:
		return generateFish(w, defs)
	case ShellPowerShell:
		return generatePowerShell(w, defs)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// flagNames returns "--long" and "-s" for a flag.
func flagNames(fd flagDef) []string {
	names := []string{"--" + fd.Long}
	if fd.Short != "" {
		names = append(names, "-"+fd.Short)
	}
	return names
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, defs []flagDef) error {
	var b strings.Builder
	var all []string

	b.WriteString("# bash completion for doc2pdf\n")
	b.WriteString("_doc2pdf() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, fd := range defs {
		all = append(all, flagNames(fd)...)
		pattern := strings.Join(flagNames(fd), "|")
		switch fd.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        %s)\n", pattern)
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(fd.Values, " "))
			b.WriteString("            return ;;\n")
		case flagFile:
			fmt.Fprintf(&b, "        %s)\n", pattern)
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"")
			for _, g := range fd.FileGlob {
				fmt.Fprintf(&b, "; compgen -f -X '!%s' -- \"$cur\"", g)
			}
			b.WriteString("))\n")
			b.WriteString("            return ;;\n")
		case flagString:
			fmt.Fprintf(&b, "        %s)\n", pattern)
			b.WriteString("            return ;;\n")
		}
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(all, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _doc2pdf doc2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

func zshValueSpec(fd flagDef) string {
	switch fd.Type {
	case flagEnum:
		return ":value:(" + strings.Join(fd.Values, " ") + ")"
	case flagFile:
		return `:file:_files -g "` + strings.Join(fd.FileGlob, " ") + `"`
	case flagString:
		return ":value: "
	default:
		return ""
	}
}

func generateZsh(w io.Writer, defs []flagDef) error {
	var b strings.Builder

	b.WriteString("#compdef doc2pdf\n\n")
	b.WriteString("_doc2pdf() {\n")
	b.WriteString("    _arguments -s \\\n")
	for _, fd := range defs {
		desc := "[" + zshEscape(fd.Desc) + "]"
		value := zshValueSpec(fd)
		repeat := ""
		if fd.Repeat {
			repeat = "*"
		}
		if fd.Short != "" {
			exclusion := "(-" + fd.Short + " --" + fd.Long + ")"
			if fd.Repeat {
				exclusion = ""
			}
			fmt.Fprintf(&b, "        '%s%s'{-%s,--%s}'%s%s' \\\n", exclusion, repeat, fd.Short, fd.Long, desc, value)
		} else {
			fmt.Fprintf(&b, "        '%s--%s%s%s' \\\n", repeat, fd.Long, desc, value)
		}
	}
	b.WriteString("        '*:path:_files'\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _doc2pdf doc2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func generateFish(w io.Writer, defs []flagDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for doc2pdf\n")
	b.WriteString("complete -c doc2pdf -F\n")
	for _, fd := range defs {
		fmt.Fprintf(&b, "complete -c doc2pdf -l %s", fd.Long)
		if fd.Short != "" {
			fmt.Fprintf(&b, " -s %s", fd.Short)
		}
		fmt.Fprintf(&b, " -d '%s'", fishEscape(fd.Desc))
		switch fd.Type {
		case flagEnum:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(fd.Values, " "))
		case flagFile:
			b.WriteString(" -r -F")
		case flagString:
			b.WriteString(" -x")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + psEscape(it) + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(w io.Writer, defs []flagDef) error {
	var b strings.Builder

	b.WriteString("# PowerShell completion for doc2pdf\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName doc2pdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $flags = @(\n")
	for _, fd := range defs {
		for _, name := range flagNames(fd) {
			fmt.Fprintf(&b, "        @{ Name = '%s'; Desc = '%s' }\n", name, psEscape(fd.Desc))
		}
	}
	b.WriteString("    )\n")

	b.WriteString("    $values = @{\n")
	for _, fd := range defs {
		if fd.Type != flagEnum {
			continue
		}
		for _, name := range flagNames(fd) {
			fmt.Fprintf(&b, "        '%s' = %s\n", name, psList(fd.Values))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $words.Count -gt 1) { $words = $words[0..($words.Count - 2)] }\n")
	b.WriteString("    $prev = $words[-1]\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $values[$prev] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n")
	b.WriteString("    if ($wordToComplete -like '-*') {\n")
	b.WriteString("        $flags | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
