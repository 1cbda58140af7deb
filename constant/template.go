// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Lua provider globals - a provider script must define all of them.
const (
	CityIDVar         = "CityID"
	CityNameVar       = "CityName"
	SearchAddressesFn = "SearchAddresses"
	PickupScheduleFn  = "PickupSchedule"
)

// ProviderTemplate is a Go text/template for scaffolding new Lua city providers.
const ProviderTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias address { street: string, number: string, suffix: string|nil, label: string|nil, ref: string }
---@alias pickup { date: string, type: string, note: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
{{ .CityIDVar }} = "{{ .ID }}"
{{ .CityNameVar }} = "{{ .Name }}"
--- END VARIABLES ---



----- MAIN -----

--- Searches addresses matching the given query.
-- @param query string Street, optionally followed by a house number
-- @return address[] Table of addresses
function {{ .SearchAddressesFn }}(query)
	return {}
end


--- Gets the pickups of an address between two dates (YYYY-MM-DD, inclusive).
-- @param ref string Reference returned by {{ .SearchAddressesFn }}
-- @param from string First day
-- @param to string Last day
-- @return pickup[] Table of pickups
function {{ .PickupScheduleFn }}(ref, from, to)
	return {}
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
