package advising

import "errors"

// Erros específicos para o contexto de geração de insights
var (
	// ErrNoTopTerms indica que não há termos de pesquisa para embasar o
	// prompt; nenhuma chamada de rede é feita nesse caso.
	ErrNoTopTerms = errors.New("não há termos de pesquisa para gerar insights")
)
