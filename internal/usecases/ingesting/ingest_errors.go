package ingesting

import "errors"

// Erros específicos para o contexto de ingestão de relatórios
var (
	// Erros fatais: nenhum dataset é produzido
	ErrNoFiles         = errors.New("nenhum arquivo de relatório foi enviado")
	ErrNoParsableFiles = errors.New("nenhum arquivo de relatório pôde ser lido")

	// Erros por arquivo (recuperáveis, viram domain.FileError)
	ErrMissingHeader     = errors.New("cabeçalho do relatório ausente")
	ErrTruncatedMetadata = errors.New("arquivo não contém as linhas de metadados esperadas")
)
