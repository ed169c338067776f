// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

const bashCompletionScript = `# bash completion for techjacked
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_techjacked()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "items top combos stats diff cache pick completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema"
    local menu="--hall -d --meal -m --week -w --refresh -r --api-url --api-timeout --api-retries --cache-dir --cache-bucket"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0
            ;;
        --meal|-m)
            COMPREPLY=( $(compgen -W "lunch dinner" -- "$cur") )
            return 0
            ;;
        --hall|-d)
            COMPREPLY=( $(compgen -W "all west-village north-ave-dining-hall" -- "$cur") )
            return 0
            ;;
        --view|-V)
            COMPREPLY=( $(compgen -W "categories protein solo" -- "$cur") )
            return 0
            ;;
        --cache-dir)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        items)
            local opts="$common $menu --unique -u"
            ;;
        top)
            local opts="$common $menu --count -n"
            ;;
        combos)
            local opts="$common $menu --protein -p --calories -k --detail -D"
            ;;
        stats)
            local opts="$common $menu --view -V --count -n --protein -p --calories -k"
            ;;
        diff)
            local opts="$common $menu --against -A --ascii"
            ;;
        pick)
            local opts="--meal -m --week -w --refresh -r --protein -p --calories -k --color -c --cache-dir --cache-bucket"
            ;;
        cache)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "info clear purge" -- "$cur") )
                return 0
            fi
            local opts="--cache-dir --cache-bucket"
            [[ ${COMP_WORDS[2]} == info ]] && opts="$opts $common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _techjacked techjacked
`

const zshCompletionScript = `#compdef techjacked

_techjacked() {
  local -a cmds
  cmds=(
    'items:list menu items'
    'top:most protein-efficient items'
    'combos:meal combinations for a protein goal'
    'stats:category distribution and standout items'
    'diff:menu changes between two weeks'
    'cache:inspect and clean the menu cache'
    'pick:interactive combo search'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[list attributes]'
  )

  local -a cachef
  cachef=(
  '--cache-dir[cache directory]:directory:_directories'
  '--cache-bucket[S3 cache bucket]:bucket'
  )

  local -a menu
  menu=(
  '*'{-d,--hall}'[dining hall]:hall:(all west-village north-ave-dining-hall)'
  '(-m --meal)'{-m,--meal}'[meal type]:meal:(lunch dinner)'
  '(-w --week)'{-w,--week}'[week]:week'
  '(-r --refresh)'{-r,--refresh}'[ignore cached menus]'
  '--api-url[menu API base URL]:url'
  '--api-timeout[request timeout]:duration'
  '--api-retries[request retries]:retries'
  $cachef
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'techjacked commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    items)
      _arguments -C $common $menu '(-u --unique)'{-u,--unique}'[one row per item and hall]'
      ;;
    top)
      _arguments -C $common $menu '(-n --count)'{-n,--count}'[number of items]:count'
      ;;
    combos)
      _arguments -C $common $menu \
        '(-p --protein)'{-p,--protein}'[protein goal]:grams' \
        '(-k --calories)'{-k,--calories}'[calorie limit]:calories' \
        '(-D --detail)'{-D,--detail}'[show option cards]'
      ;;
    stats)
      _arguments -C $common $menu \
        '(-V --view)'{-V,--view}'[what to show]:view:(categories protein solo)' \
        '(-n --count)'{-n,--count}'[number of items]:count' \
        '(-p --protein)'{-p,--protein}'[protein goal]:grams' \
        '(-k --calories)'{-k,--calories}'[calorie limit]:calories'
      ;;
    diff)
      _arguments -C $common $menu \
        '(-A --against)'{-A,--against}'[week to compare with]:week' \
        '--ascii[annotated JSON diff]'
      ;;
    pick)
      _arguments -C $cachef \
        '(-m --meal)'{-m,--meal}'[meal type]:meal:(lunch dinner)' \
        '(-w --week)'{-w,--week}'[week]:week' \
        '(-r --refresh)'{-r,--refresh}'[ignore cached menus]' \
        '(-p --protein)'{-p,--protein}'[protein goal]:grams' \
        '(-k --calories)'{-k,--calories}'[calorie limit]:calories'
      ;;
    cache)
      if (( CURRENT == 3 )); then
        _values 'cache command' info clear purge
      elif [[ $words[3] == info ]]; then
        _arguments -C $common $cachef
      else
        _arguments -C $cachef
      fi
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _techjacked techjacked
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		fmt.Fprintln(stderr(cmd), "usage: techjacked completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "techjacked completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
