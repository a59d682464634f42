// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	UvNotFoundId Id = iota + 1
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links to docs about this issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	uvNotFoundIssue = &Issue{
		id: UvNotFoundId,
		mdMsg: `
# uv is not available!

meowda delegates environment creation and package management to uv,
but no working uv binary was found.

## Things you can try:
- Install uv:
~~~
$ curl -LsSf https://astral.sh/uv/install.sh | sh
~~~

- Or, if uv is installed somewhere unusual, point meowda at it:
~~~toml
# config.toml
uv_path = "/path/to/uv"
~~~

- Verify the installation:
~~~
$ uv --version
~~~`,
		extLinks: []HttpLink{
			"https://docs.astral.sh/uv/getting-started/installation/",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file contains syntax errors or invalid values.

## Common issues:
- Invalid TOML syntax (missing quotes, mismatched brackets)
- default_scope set to something other than "local" or "global"

## Things you can try:
- Check the error message above for details
- Show the config file location:
~~~
$ meowda config path
~~~

- Recreate the default configuration:
~~~
$ meowda config init
~~~`,
	}

	issues = map[Id]*Issue{
		UvNotFoundId:       uvNotFoundIssue,
		ConfigLoadFailedId: configLoadFailedIssue,
	}
)

// All returns every registered issue.
func All() []*Issue {
	return slices.Collect(maps.Values(issues))
}

// Get looks an issue up by its Id.
func Get(id Id) *Issue {
	return issues[id]
}
