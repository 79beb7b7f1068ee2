package flaskemitter

const flaskTemplate = `from flask import Flask, request, jsonify
from flask_sqlalchemy import SQLAlchemy
import os

# Create Flask app
app = Flask(__name__)

# Configure database
app.config['SQLALCHEMY_DATABASE_URI'] = os.environ.get('DATABASE_URL', 'sqlite:///{{.AppName}}.db')
app.config['SQLALCHEMY_TRACK_MODIFICATIONS'] = False

# Initialize SQLAlchemy
db = SQLAlchemy(app)

# API information
API_NAME = "{{.Title}}"
API_VERSION = "{{.Version}}"

# Models
{{- if not .Models}}
# No models could be generated from the API specification
{{- end}}
{{- range .Models}}

class {{.ClassName}}(db.Model):
    __tablename__ = '{{.Table}}'

    id = db.Column(db.Integer, primary_key=True)
{{- range .Fields}}
    {{.Name}} = db.Column({{.Column}})
{{- end}}

    def __repr__(self):
        return f'<{{.ClassName}} {self.id}>'

    def to_dict(self):
        return {
            'id': self.id,
{{- range .Fields}}
            '{{.Name}}': self.{{.Name}},
{{- end}}
        }
{{- end}}

# Routes
{{- range .Routes}}

@app.route('{{.FlaskPath}}', methods=[{{.Methods}}])
def {{.FuncName}}({{.Args}}):
    method = request.method

    if method == 'GET':
{{- if .HasParams}}
        item = {{.ModelClass}}.query.get_or_404({{.FirstParam}})
        return jsonify(item.to_dict())
{{- else}}
        items = {{.ModelClass}}.query.all()
        return jsonify([item.to_dict() for item in items])
{{- end}}
{{- if .HasPost}}
    elif method == 'POST':
        data = request.json
        item = {{.ModelClass}}(**data)
        db.session.add(item)
        db.session.commit()
        return jsonify(item.to_dict()), 201
{{- end}}
{{- if .HasPut}}
    elif method == 'PUT':
        item = {{.ModelClass}}.query.get_or_404({{.FirstParam}})
        data = request.json
        for key, value in data.items():
            setattr(item, key, value)
        db.session.commit()
        return jsonify(item.to_dict())
{{- end}}
{{- if .HasDelete}}
    elif method == 'DELETE':
        item = {{.ModelClass}}.query.get_or_404({{.FirstParam}})
        db.session.delete(item)
        db.session.commit()
        return jsonify({'message': 'Item deleted'})
{{- end}}
{{- if .HasPatch}}
    elif method == 'PATCH':
        item = {{.ModelClass}}.query.get_or_404({{.FirstParam}})
        data = request.json
        for key, value in data.items():
            setattr(item, key, value)
        db.session.commit()
        return jsonify(item.to_dict())
{{- end}}

    return jsonify({'error': 'Method not allowed'}), 405
{{- end}}


# Create database tables
with app.app_context():
    db.create_all()


# Root endpoint
@app.route('/')
def index():
    return jsonify({
        'name': API_NAME,
        'version': API_VERSION,
        'message': 'Welcome to the API'
    })


# Run the app
if __name__ == '__main__':
    app.run(debug=True)
`
