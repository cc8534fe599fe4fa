package config

// DefaultKDL is the starter file written by `mpnkit config init`.
const DefaultKDL = `// mpnkit configuration
version 1

engine {
    // "registration" tries manufacturer handlers in their fixed order;
    // "specificity" prefers the handler whose matching pattern has the longest literal prefix.
    ambiguity "registration"
    cache_size 0
    workers 0
    suggest_limit 5
    fuzzy_threshold 0.7
}

logging {
    level "warn"
    format "console"
    output "stderr"
}

// Extra equivalence families. The category is a base type.
// family "OPAMP" "precision dual" {
//     members "OPA2277" "OP297"
// }

// Extra recognition patterns, served by the custom handler.
// pattern "OPAMP" "^OP\\d{2,3}"

// YAML family tables, relative to this file.
// family_files "families/**/*.yaml"
`
