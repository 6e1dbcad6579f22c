// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	InstallFailedId Id = iota + 1
	UnsupportedLicenseId
	EntryPointResolutionId
	InvalidManifestId
	TranspileFailedId
	PublishFailedId
	ConfigLoadFailedId
	InvalidPackageListId
	InvalidPinnedSpecId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation about the failing step
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

// Render renders the Markdown message with the given glamour style
// ("dark", "light", "notty", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Installing the package failed!

The package manager could not install the pinned package into the workspace.

## Things you can try:
- Check that the name and version exist on the registry:
~~~
$ npm view <name>@<version> version
~~~

- Check your network connection and registry configuration (~/.npmrc)
- Run again with --verbose to see the package manager output`,
		docLinks: []HttpLink{"https://docs.npmjs.com/cli/commands/npm-install"},
	}

	unsupportedLicenseIssue = &Issue{
		id: UnsupportedLicenseId,
		mdMsg: `
# Unsupported license!

Only packages licensed under MIT are republished as CommonJS modules.
The package, or one of its ESM-only dependencies, declares another license.

## Things you can try:
- Remove the package from your package list
- Ask the package author whether an MIT-licensed release exists`,
	}

	entryPointResolutionIssue = &Issue{
		id: EntryPointResolutionId,
		mdMsg: `
# Cannot derive a CommonJS entry point!

The package declares "exports", but none of the recognized conditions
("node", "browser" and "default" with plain paths) yields a main entry.
Subpath-only exports and nested condition objects cannot be represented as
a legacy "main"/"browser" pair.

## Things you can try:
- Pin an older version of the package that still ships "main"
- Remove the package from your package list`,
		docLinks: []HttpLink{"https://nodejs.org/api/packages.html#conditional-exports"},
	}

	invalidManifestIssue = &Issue{
		id: InvalidManifestId,
		mdMsg: `
# Invalid package manifest!

An installed package.json is missing its "name" or "version", or one of its
fields has an unexpected shape. The installed tree cannot be trusted.

## Things you can try:
- Delete the workspace directory and run again
- Run again with --verbose to see which manifest failed`,
	}

	transpileFailedIssue = &Issue{
		id: TranspileFailedId,
		mdMsg: `
# Transpiling failed!

The transpiler could not rewrite the ESM-only packages as CommonJS.

## Things you can try:
- Make sure the transpiler is installed:
~~~
$ yarn add --dev @swc/cli @swc/core
~~~

- Check the commands.transpile setting in your config file
- Run again with --verbose to see the transpiler output`,
		docLinks: []HttpLink{"https://swc.rs/docs/usage/cli"},
	}

	publishFailedIssue = &Issue{
		id: PublishFailedId,
		mdMsg: `
# Publishing failed!

The registry rejected a converted package. Versions that were already
published are skipped; this is a different failure.

## Things you can try:
- Log in to the registry:
~~~
$ npm login
~~~

- Check that you may publish to the configured scope
- Keep publish.dry_run enabled (the default) until the output looks right`,
		docLinks: []HttpLink{"https://docs.npmjs.com/cli/commands/npm-publish"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where the configuration is read from:
~~~
$ cjsify config path
~~~

- Write a fresh default file:
~~~
$ cjsify config init
~~~

- Check the CUE syntax of your config.cue`,
	}

	invalidPackageListIssue = &Issue{
		id: InvalidPackageListId,
		mdMsg: `
# Invalid package list!

The packages file must be a list of pinned specifiers.

## Example:
~~~json
["left-pad@1.3.0", "@scope/name@2.0.0"]
~~~`,
	}

	invalidPinnedSpecIssue = &Issue{
		id: InvalidPinnedSpecId,
		mdMsg: `
# Invalid package specifier!

Packages must be pinned to an exact version as name@version, for example
"left-pad@1.3.0" or "@scope/name@2.0.0". Ranges and dist-tags are not accepted.`,
	}

	issues = map[Id]*Issue{
		installFailedIssue.Id():        installFailedIssue,
		unsupportedLicenseIssue.Id():   unsupportedLicenseIssue,
		entryPointResolutionIssue.Id(): entryPointResolutionIssue,
		invalidManifestIssue.Id():      invalidManifestIssue,
		transpileFailedIssue.Id():      transpileFailedIssue,
		publishFailedIssue.Id():        publishFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		invalidPackageListIssue.Id():   invalidPackageListIssue,
		invalidPinnedSpecIssue.Id():    invalidPinnedSpecIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
