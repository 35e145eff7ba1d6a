package mython

func (p *parser) parseStatement() (Statement, error) {
	switch p.cur().Type {
	case tokenClass:
		return p.parseClassDefinition()
	case tokenIf:
		return p.parseIfStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenID:
		return p.parseAssignOrExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// endStatement consumes the trailing NEWLINE every simple statement ends on.
func (p *parser) endStatement() error {
	_, err := p.expectType(tokenNewline)
	return err
}

func (p *parser) parseExprStatement() (Statement, error) {
	pos := p.cur().Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, position: pos}, nil
}

// parseAssignOrExprStatement disambiguates statements that begin with an
// identifier: a dotted path followed by '=' is an assignment (simple or
// field), anything else continues as an expression statement.
func (p *parser) parseAssignOrExprStatement() (Statement, error) {
	pos := p.cur().Pos
	path, err := p.parseIdentPath()
	if err != nil {
		return nil, err
	}
	if v, ok := path.(*VariableExpr); ok && p.cur().Equal(charToken('=')) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		if len(v.Names) == 1 {
			return &AssignStmt{Name: v.Names[0], Value: rhs, position: pos}, nil
		}
		obj := &VariableExpr{Names: v.Names[:len(v.Names)-1], position: v.position}
		return &FieldAssignStmt{
			Object:   obj,
			Field:    v.Names[len(v.Names)-1],
			Value:    rhs,
			position: pos,
		}, nil
	}
	expr, err := p.parseBinaryFrom(path, precOr)
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, position: pos}, nil
}

// parsePrintStatement accepts zero or more argument expressions up to the
// end of the line; commas between arguments are optional.
func (p *parser) parsePrintStatement() (Statement, error) {
	pos := p.cur().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []Expression
	for p.cur().Type != tokenNewline {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
		if p.cur().Equal(charToken(',')) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &PrintStmt{Args: args, position: pos}, nil
}

func (p *parser) parseReturnStatement() (Statement, error) {
	pos := p.cur().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: expr, position: pos}, nil
}

func (p *parser) parseIfStatement() (Statement, error) {
	pos := p.cur().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	consequent, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var alternate []Statement
	if p.cur().Type == tokenElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		alternate, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: cond, Consequent: consequent, Alternate: alternate, position: pos}, nil
}

// parseSuite parses an indented statement block: NEWLINE INDENT stmts DEDENT.
func (p *parser) parseSuite() ([]Statement, error) {
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenIndent); err != nil {
		return nil, err
	}
	var stmts []Statement
	for p.cur().Type != tokenDedent {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.advance()
}

func (p *parser) parseClassDefinition() (Statement, error) {
	pos := p.cur().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectType(tokenID)
	if err != nil {
		return nil, err
	}
	var parent *ClassDef
	if p.cur().Equal(charToken('(')) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parentTok, err := p.expectType(tokenID)
		if err != nil {
			return nil, err
		}
		parent = p.classes[parentTok.Literal]
		if parent == nil {
			return nil, p.errorf(parentTok.Pos, "unknown base class %s", parentTok.Literal)
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if _, err := p.expectType(tokenIndent); err != nil {
		return nil, err
	}
	// Register the class before its body so its own methods can construct it.
	def := &ClassDef{Name: nameTok.Literal, Parent: parent}
	p.classes[def.Name] = def
	var methods []*Method
	for p.cur().Type == tokenDef {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expectType(tokenDedent); err != nil {
		return nil, err
	}
	*def = *NewClassDef(nameTok.Literal, methods, parent)
	return &ClassDefStmt{Class: def, position: pos}, nil
}

// parseMethod parses one def inside a class body. The explicit self receiver
// is required syntactically but is not part of the formal parameter list.
func (p *parser) parseMethod() (*Method, error) {
	pos := p.cur().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectType(tokenID)
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	selfTok, err := p.expectType(tokenID)
	if err != nil {
		return nil, err
	}
	if selfTok.Literal != "self" {
		return nil, p.errorf(selfTok.Pos, "first parameter of %s must be self", nameTok.Literal)
	}
	var params []string
	for p.cur().Equal(charToken(',')) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		paramTok, err := p.expectType(tokenID)
		if err != nil {
			return nil, err
		}
		params = append(params, paramTok.Literal)
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &Method{Name: nameTok.Literal, Params: params, Body: body, Pos: pos}, nil
}
