// Package token defines lexical token kinds and trivia for the TypeScript
// subset morph understands.
// Invariants:
//   - Token.Text is the exact source text under Token.Span.
//   - Only reserved words get keyword kinds. Contextual words (public, static,
//     readonly, get, set, declare, namespace, type, ...) lex as Ident and are
//     recognised by the parser by text.
//   - Comments and whitespace never appear in the token stream; they are
//     attached to the following token as Leading trivia. A `/** ... */` block
//     is TriviaDocBlock.
package token
