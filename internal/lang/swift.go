package lang

func init() {
	Register(&LanguageSpec{
		Language:             Swift,
		FileExtensions:       []string{".swift"},
		ModuleNodeTypes:      []string{"source_file"},
		CallNodeTypes:        []string{"call_expression"},
		DeclarationNodeTypes: []string{"property_declaration"},
		AssignmentNodeTypes:  []string{"assignment"},
		LambdaNodeTypes:      []string{"lambda_literal"},
	})
}
